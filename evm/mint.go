// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evm

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/bitmark-inc/logger"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/gateway"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
)

// Minter - submits the network's signed mint to the gateway contract
type Minter struct {
	log           *logger.L
	client        Client
	contract      common.Address
	key           *ecdsa.PrivateKey
	from          common.Address
	confirmations uint64
}

// NewMinter - signs with key, a mint is settled at the given depth
func NewMinter(client Client, contract common.Address, key *ecdsa.PrivateKey, confirmations uint64) (*Minter, error) {
	if nil == client || nil == key {
		return nil, fault.ErrMissingConfiguration
	}
	if 0 == confirmations {
		confirmations = 1
	}
	return &Minter{
		log:           logger.New("evm"),
		client:        client,
		contract:      contract,
		key:           key,
		from:          crypto.PubkeyToAddress(key.PublicKey),
		confirmations: confirmations,
	}, nil
}

// LoadKey - a private key in hex
func LoadKey(s string) (*ecdsa.PrivateKey, error) {
	if 2 < len(s) && "0x" == s[:2] {
		s = s[2:]
	}
	key, err := crypto.HexToECDSA(s)
	if nil != err {
		return nil, fault.ErrInvalidPrivateKey
	}
	return key, nil
}

// From - the account paying for mints
func (m *Minter) From() common.Address {
	return m.from
}

// Submit - send the mint call and return its transaction hash
func (m *Minter) Submit(ctx context.Context, t *transfer.Transfer, response *transaction.Transaction) (string, error) {
	data, err := m.callData(t, response)
	if nil != err {
		return "", err
	}

	chainID, err := m.client.ChainID(ctx)
	if nil != err {
		return "", transient(err)
	}
	nonce, err := m.client.PendingNonceAt(ctx, m.from)
	if nil != err {
		return "", transient(err)
	}
	gasPrice, err := m.client.SuggestGasPrice(ctx)
	if nil != err {
		return "", transient(err)
	}
	gas, err := m.client.EstimateGas(ctx, ethereum.CallMsg{
		From: m.from,
		To:   &m.contract,
		Data: data,
	})
	if nil != err {
		return "", transient(err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &m.contract,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), m.key)
	if nil != err {
		return "", err
	}
	if err := m.client.SendTransaction(ctx, signed); nil != err {
		return "", transient(err)
	}

	m.log.Infof("%s: mint: %s  nonce: %d  gas: %d", t.ID, signed.Hash().Hex(), nonce, gas)
	return signed.Hash().Hex(), nil
}

// Settled - the mint is mined deep enough, a failed mint is rejected
func (m *Minter) Settled(ctx context.Context, t *transfer.Transfer, reference string) (bool, error) {
	hash, err := ParseHash(reference)
	if nil != err {
		return false, err
	}
	r, err := receipt(ctx, m.client, hash)
	if nil != err || nil == r {
		return false, err
	}
	if types.ReceiptStatusSuccessful != r.Status {
		return false, fault.ErrTransactionReverted
	}
	depth, err := confirmations(ctx, m.client, r)
	if nil != err {
		return false, err
	}
	m.log.Debugf("%s: mint: %s  confirmations: %d/%d", t.ID, reference, depth, m.confirmations)
	return depth >= m.confirmations, nil
}

// mint(pHash, amount, nHash, sig) from the network's output
func (m *Minter) callData(t *transfer.Transfer, response *transaction.Transaction) ([]byte, error) {
	if nil == response {
		return nil, fault.ErrMissingResponse
	}

	amount, ok := outField(response, "amount").(*big.Int)
	if !ok {
		return nil, fault.ErrMissingField
	}
	nHash, ok := outField(response, "nhash").([32]byte)
	if !ok {
		return nil, fault.ErrMissingField
	}
	sig, ok := outField(response, "sig").([65]byte)
	if !ok {
		return nil, fault.ErrMissingField
	}
	pHash, ok := outField(response, "phash").([32]byte)
	if !ok {
		pHash = gateway.PHash(t.Payload)
	}

	return GatewayABI.Pack("mint", pHash, amount, nHash, sig[:])
}

func outField(tx *transaction.Transaction, name string) interface{} {
	v, _ := tx.OutField(name)
	return v
}
