// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/gatewayd/currency/satoshi"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/util"
)

// SoChain - the chain.so explorer API
type SoChain struct {
	baseURL string
	network string // BTC, BTCTEST, LTC, LTCTEST, DOGE, DOGETEST
	fetcher *util.Fetcher
}

type soChainReply struct {
	Status string `json:"status"`
	Data   struct {
		Txs []struct {
			TxID          string `json:"txid"`
			OutputNo      uint32 `json:"output_no"`
			Value         string `json:"value"`
			Confirmations uint64 `json:"confirmations"`
		} `json:"txs"`
	} `json:"data"`
}

// NewSoChain - provider for one SoChain network
func NewSoChain(baseURL string, network string, fetcher *util.Fetcher) *SoChain {
	return &SoChain{
		baseURL: baseURL,
		network: network,
		fetcher: fetcher,
	}
}

// Name - for logging
func (s *SoChain) Name() string {
	return "sochain/" + s.network
}

// FindDeposits - unspent outputs with at least the given confirmations
func (s *SoChain) FindDeposits(ctx context.Context, address string, minConfirmations uint64) ([]Deposit, error) {
	url := fmt.Sprintf("%s/get_tx_unspent/%s/%s/%d", s.baseURL, s.network, address, minConfirmations)

	var reply soChainReply
	if err := s.fetcher.FetchJSON(ctx, url, &reply); nil != err {
		return nil, err
	}
	if "success" != reply.Status {
		return nil, fmt.Errorf("status: %q: %w", reply.Status, fault.ErrInvalidResponse)
	}

	deposits := make([]Deposit, 0, len(reply.Data.Txs))
	for _, tx := range reply.Data.Txs {
		amount, err := satoshi.Parse(tx.Value)
		if nil != err {
			return nil, fmt.Errorf("value: %q: %w", tx.Value, fault.ErrInvalidResponse)
		}
		if tx.Confirmations < minConfirmations {
			continue
		}
		deposits = append(deposits, Deposit{
			TxID:          tx.TxID,
			Index:         tx.OutputNo,
			Amount:        amount,
			Confirmations: tx.Confirmations,
		})
	}
	return deposits, nil
}
