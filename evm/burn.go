// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evm

import (
	"context"
	"math/big"

	"github.com/bitmark-inc/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/gateway"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
)

// default burn depths per network
var burnConfirmations = map[chain.Network]uint64{
	chain.Mainnet: 30,
	chain.Testnet: 6,
	chain.Regtest: 1,
}

// Burns - the burn side of a release, reading LogBurn events from the
// receipt of the transaction given by SourceSubmitted
type Burns struct {
	log           *logger.L
	client        Client
	contract      common.Address
	network       chain.Network
	confirmations uint64
}

// a decoded burn log
type burn struct {
	ref    *big.Int
	to     string
	amount *big.Int
	index  uint32
}

// NewBurns - zero confirmations selects the network default
func NewBurns(client Client, contract common.Address, network chain.Network, confirmations uint64) (*Burns, error) {
	if nil == client {
		return nil, fault.ErrMissingConfiguration
	}
	if 0 == confirmations {
		n, ok := burnConfirmations[network]
		if !ok {
			return nil, fault.ErrUnsupportedNetwork
		}
		confirmations = n
	}
	return &Burns{
		log:           logger.New("evm"),
		client:        client,
		contract:      contract,
		network:       network,
		confirmations: confirmations,
	}, nil
}

// Deposits - burns to the transfer's release address
//
// nothing is returned until the burn transaction is known and mined
func (b *Burns) Deposits(ctx context.Context, t *transfer.Transfer) ([]datasource.Deposit, error) {
	if "" == t.SourceHash {
		b.log.Tracef("%s: no burn transaction yet", t.ID)
		return nil, nil
	}
	hash, err := ParseHash(t.SourceHash)
	if nil != err {
		return nil, err
	}

	r, err := receipt(ctx, b.client, hash)
	if nil != err || nil == r {
		return nil, err
	}
	if types.ReceiptStatusSuccessful != r.Status {
		return nil, fault.ErrTransactionReverted
	}

	depth, err := confirmations(ctx, b.client, r)
	if nil != err {
		return nil, err
	}

	deposits := make([]datasource.Deposit, 0, len(r.Logs))
	for _, l := range r.Logs {
		x, ok := b.decode(l)
		if !ok || x.to != t.To {
			continue
		}
		if !x.amount.IsUint64() {
			return nil, fault.ErrValueOutOfRange
		}
		deposits = append(deposits, datasource.Deposit{
			TxID:          hash.Hex(),
			Index:         x.index,
			Amount:        x.amount.Uint64(),
			Confirmations: depth,
		})
	}
	return deposits, nil
}

// RequiredConfirmations - burn depth before submission
func (b *Burns) RequiredConfirmations(network chain.Network) (uint64, error) {
	if b.network != network {
		return 0, fault.ErrUnsupportedNetwork
	}
	return b.confirmations, nil
}

// Build - the release transaction for a confirmed burn
func (b *Burns) Build(ctx context.Context, t *transfer.Transfer, deposit datasource.Deposit) (*transaction.Transaction, error) {
	hash, err := ParseHash(deposit.TxID)
	if nil != err {
		return nil, err
	}
	r, err := receipt(ctx, b.client, hash)
	if nil != err {
		return nil, err
	}
	if nil == r {
		return nil, fault.ErrTransactionNotFound
	}

	for _, l := range r.Logs {
		x, ok := b.decode(l)
		if !ok || x.index != deposit.Index {
			continue
		}

		// the burn counter is the nonce of a release
		var nonce [gateway.HashLength]byte
		x.ref.FillBytes(nonce[:])
		nHash, err := gateway.NHash(nonce, hash.Bytes(), x.index)
		if nil != err {
			return nil, err
		}

		typed, err := transaction.BurnInput{
			Ref:    x.ref,
			To:     x.to,
			Amount: x.amount,
			Nonce:  nonce,
			NHash:  nHash,
		}.Typed()
		if nil != err {
			return nil, err
		}
		tx, err := transaction.New(transaction.CurrentVersion, t.Selector(), typed)
		if nil != err {
			return nil, err
		}
		b.log.Infof("%s: built: %s  burn: %s  ref: %s", t.ID, tx.Hash, deposit.Key(), x.ref)
		return tx, nil
	}
	return nil, fault.ErrTransactionNotFound
}

func (b *Burns) decode(l *types.Log) (burn, bool) {
	if nil == l || b.contract != l.Address || len(l.Topics) < 2 || BurnTopic != l.Topics[0] {
		return burn{}, false
	}
	values, err := GatewayABI.Unpack("LogBurn", l.Data)
	if nil != err || 2 != len(values) {
		b.log.Warnf("undecodable burn log: %s:%d  error: %v", l.TxHash.Hex(), l.Index, err)
		return burn{}, false
	}
	to, ok1 := values[0].([]byte)
	amount, ok2 := values[1].(*big.Int)
	if !ok1 || !ok2 || l.Index > 0xffffffff {
		return burn{}, false
	}
	return burn{
		ref:    l.Topics[1].Big(),
		to:     string(to),
		amount: amount,
		index:  uint32(l.Index),
	}, true
}
