// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/transfer"
)

type depositsResult struct {
	Address  string               `json:"address"`
	Deposits []datasource.Deposit `json:"deposits"`
	Links    []string             `json:"links,omitempty"`
}

func runDeposits(c *cli.Context) error {

	m := getMetadata(c)

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	address, err := checkRequired("address", c.String("address"))
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), transfer.DefaultCallTimeout)
	defer cancel()

	r, err := newResolver(ctx, m.config, newFetcher(m.config))
	if nil != err {
		return err
	}

	deposits, err := r.findDeposits(ctx, asset, address, c.Uint64("confirmations"))
	if nil != err {
		return err
	}

	result := depositsResult{
		Address:  address,
		Deposits: deposits,
	}
	for _, d := range deposits {
		if link := asset.TransactionLink(m.config.network, d.TxID); "" != link {
			result.Links = append(result.Links, link)
		}
	}
	return printJson(m.w, result)
}
