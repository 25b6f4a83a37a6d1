// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import (
	"context"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/gateway"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
)

// DepositFinder - anything that lists the outputs paying an address,
// normally a datasource.Source
type DepositFinder interface {
	FindDeposits(ctx context.Context, address string, minConfirmations uint64) ([]datasource.Deposit, error)
}

// Chain - the lock side of a mint on a UTXO chain
//
// deposits are found at the gateway address derived from the transfer
// and the network's public key
type Chain struct {
	log           *logger.L
	asset         currency.Currency
	network       chain.Network
	publicKey     []byte
	finder        DepositFinder
	confirmations uint64
}

// New - create a chain, zero confirmations selects the asset default
func New(asset currency.Currency, network chain.Network, publicKey []byte, finder DepositFinder, confirmations uint64) (*Chain, error) {
	if _, err := asset.NetworkParams(network); nil != err {
		return nil, err
	}
	if nil == finder {
		return nil, fault.ErrNoProviders
	}
	if _, err := crypto.DecompressPubkey(publicKey); nil != err {
		return nil, fault.ErrInvalidPublicKey
	}
	if 0 == confirmations {
		confirmations, _ = asset.Confirmations(network)
	}

	return &Chain{
		log:           logger.New("utxo"),
		asset:         asset,
		network:       network,
		publicKey:     append([]byte{}, publicKey...),
		finder:        finder,
		confirmations: confirmations,
	}, nil
}

// Gateway - derive the deposit address of a transfer
func (c *Chain) Gateway(t *transfer.Transfer) (*gateway.Gateway, error) {
	if c.asset != t.Asset || c.network != t.Network {
		return nil, fault.ErrInvalidAsset
	}
	if transaction.Mint != t.Direction {
		return nil, fault.ErrInvalidDirection
	}

	token, err := gateway.ParseHostAddress(t.Token)
	if nil != err {
		return nil, err
	}
	to, err := gateway.ParseHostAddress(t.To)
	if nil != err {
		return nil, err
	}

	return gateway.Derive(gateway.Parameters{
		Asset:     c.asset,
		Network:   c.network,
		PublicKey: c.publicKey,
		Commitment: gateway.Commitment{
			PHash:  gateway.PHash(t.Payload),
			Amount: new(big.Int).SetUint64(t.Amount),
			Token:  token,
			To:     to,
			Nonce:  t.Nonce,
		},
	})
}

// Prepare - fill in the cached gateway address of a new transfer
func (c *Chain) Prepare(t *transfer.Transfer) error {
	g, err := c.Gateway(t)
	if nil != err {
		return err
	}
	t.GatewayAddress = g.Address
	return nil
}

// Deposits - outputs paying the transfer's gateway address
//
// the address is always derived again, the cached value is only for
// display
func (c *Chain) Deposits(ctx context.Context, t *transfer.Transfer) ([]datasource.Deposit, error) {
	g, err := c.Gateway(t)
	if nil != err {
		return nil, err
	}
	c.log.Debugf("%s: address: %s", t.ID, g.Address)
	return c.finder.FindDeposits(ctx, g.Address, 0)
}

// RequiredConfirmations - deposit depth before submission
func (c *Chain) RequiredConfirmations(network chain.Network) (uint64, error) {
	if c.network != network {
		return 0, fault.ErrUnsupportedNetwork
	}
	return c.confirmations, nil
}

// Build - the mint transaction for a confirmed deposit
func (c *Chain) Build(ctx context.Context, t *transfer.Transfer, deposit datasource.Deposit) (*transaction.Transaction, error) {
	g, err := c.Gateway(t)
	if nil != err {
		return nil, err
	}

	txID, err := outpointHash(deposit.TxID)
	if nil != err {
		return nil, err
	}
	nHash, err := gateway.NHash(t.Nonce, txID, deposit.Index)
	if nil != err {
		return nil, err
	}

	input := transaction.MintInput{
		TxID:         txID,
		Index:        deposit.Index,
		Value:        new(big.Int).SetUint64(deposit.Amount),
		PubKeyScript: g.PubKeyScript,
		Payload:      t.Payload,
		PHash:        gateway.PHash(t.Payload),
		Token:        strip0x(t.Token),
		To:           strip0x(t.To),
		Nonce:        t.Nonce,
		NHash:        nHash,
		GHash:        g.GHash,
		GPubKey:      c.publicKey,
	}
	typed, err := input.Typed()
	if nil != err {
		return nil, err
	}

	tx, err := transaction.New(transaction.CurrentVersion, t.Selector(), typed)
	if nil != err {
		return nil, err
	}
	c.log.Infof("%s: built: %s  outpoint: %s", t.ID, tx.Hash, deposit.Key())
	return tx, nil
}

// explorers show the txid byte reversed
func outpointHash(txID string) ([]byte, error) {
	b, err := hex.DecodeString(strip0x(txID))
	if nil != err || 32 != len(b) {
		return nil, fault.ErrInvalidHash
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b, nil
}

func strip0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
