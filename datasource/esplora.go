// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/gatewayd/util"
)

// how long a chain tip height is reused
const tipLifetime = 10 * time.Second

const tipKey = "tip"

// Esplora - the Blockstream explorer API
type Esplora struct {
	name    string
	baseURL string
	fetcher *util.Fetcher
	tip     *cache.Cache
}

type esploraUTXO struct {
	TxID   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Value  uint64 `json:"value"`
	Status struct {
		Confirmed   bool   `json:"confirmed"`
		BlockHeight uint64 `json:"block_height"`
	} `json:"status"`
}

// NewEsplora - provider for an Esplora compatible base URL
// e.g. https://blockstream.info/api
func NewEsplora(name string, baseURL string, fetcher *util.Fetcher) *Esplora {
	return &Esplora{
		name:    name,
		baseURL: baseURL,
		fetcher: fetcher,
		tip:     cache.New(tipLifetime, 2*tipLifetime),
	}
}

// Name - for logging
func (e *Esplora) Name() string {
	return e.name
}

// FindDeposits - unspent outputs of the address
func (e *Esplora) FindDeposits(ctx context.Context, address string, minConfirmations uint64) ([]Deposit, error) {
	var utxos []esploraUTXO
	if err := e.fetcher.FetchJSON(ctx, e.baseURL+"/address/"+address+"/utxo", &utxos); nil != err {
		return nil, err
	}
	if 0 == len(utxos) {
		return nil, nil
	}

	height, err := e.tipHeight(ctx)
	if nil != err {
		return nil, err
	}

	deposits := make([]Deposit, 0, len(utxos))
	for _, u := range utxos {
		confirmations := uint64(0)
		if u.Status.Confirmed && height >= u.Status.BlockHeight {
			confirmations = height - u.Status.BlockHeight + 1
		}
		if confirmations < minConfirmations {
			continue
		}
		deposits = append(deposits, Deposit{
			TxID:          u.TxID,
			Index:         u.Vout,
			Amount:        u.Value,
			Confirmations: confirmations,
		})
	}
	return deposits, nil
}

func (e *Esplora) tipHeight(ctx context.Context) (uint64, error) {
	if h, ok := e.tip.Get(tipKey); ok {
		return h.(uint64), nil
	}
	var height uint64
	if err := e.fetcher.FetchJSON(ctx, e.baseURL+"/blocks/tip/height", &height); nil != err {
		return 0, err
	}
	e.tip.SetDefault(tipKey, height)
	return height, nil
}
