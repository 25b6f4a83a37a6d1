// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/util"
)

// maximum outputs fetched in one dashboard call
const blockchairLimit = 100

// Blockchair - the blockchair.com dashboard API
type Blockchair struct {
	baseURL string
	network string // bitcoin, bitcoin/testnet, bitcoin-cash, litecoin, dogecoin
	fetcher *util.Fetcher
}

type blockchairReply struct {
	Data map[string]struct {
		UTXO []struct {
			BlockID         int64  `json:"block_id"`
			TransactionHash string `json:"transaction_hash"`
			Index           uint32 `json:"index"`
			Value           uint64 `json:"value"`
		} `json:"utxo"`
	} `json:"data"`
	Context struct {
		Code  int   `json:"code"`
		State int64 `json:"state"`
	} `json:"context"`
}

// NewBlockchair - provider for one Blockchair network
func NewBlockchair(baseURL string, network string, fetcher *util.Fetcher) *Blockchair {
	return &Blockchair{
		baseURL: baseURL,
		network: network,
		fetcher: fetcher,
	}
}

// Name - for logging
func (b *Blockchair) Name() string {
	return "blockchair/" + b.network
}

// FindDeposits - unspent outputs of the address
//
// mempool outputs have a negative block id and zero confirmations
func (b *Blockchair) FindDeposits(ctx context.Context, address string, minConfirmations uint64) ([]Deposit, error) {
	url := fmt.Sprintf("%s/%s/dashboards/address/%s?limit=0,%d", b.baseURL, b.network, address, blockchairLimit)

	var reply blockchairReply
	if err := b.fetcher.FetchJSON(ctx, url, &reply); nil != err {
		return nil, err
	}
	if 200 != reply.Context.Code {
		return nil, fmt.Errorf("code: %d: %w", reply.Context.Code, fault.ErrInvalidResponse)
	}

	dashboard, ok := reply.Data[address]
	if !ok {
		return nil, nil
	}

	deposits := make([]Deposit, 0, len(dashboard.UTXO))
	for _, u := range dashboard.UTXO {
		confirmations := uint64(0)
		if u.BlockID > 0 && reply.Context.State >= u.BlockID {
			confirmations = uint64(reply.Context.State-u.BlockID) + 1
		}
		if confirmations < minConfirmations {
			continue
		}
		deposits = append(deposits, Deposit{
			TxID:          u.TransactionHash,
			Index:         u.Index,
			Amount:        u.Value,
			Confirmations: confirmations,
		})
	}
	return deposits, nil
}
