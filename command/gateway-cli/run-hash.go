// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/pack"
	"github.com/bitmark-inc/gatewayd/transaction"
)

type hashResult struct {
	Hash     transaction.Hash `json:"hash"`
	Version  string           `json:"version"`
	Selector string           `json:"selector"`
}

func runHash(c *cli.Context) error {

	m := getMetadata(c)

	s, err := checkRequired("selector", c.String("selector"))
	if nil != err {
		return err
	}
	selector, err := transaction.ParseSelector(s)
	if nil != err {
		return err
	}
	input, err := checkRequired("input", c.String("input"))
	if nil != err {
		return err
	}

	var typed pack.Typed
	if err := json.Unmarshal([]byte(input), &typed); nil != err {
		return fmt.Errorf("input: %s", err)
	}

	hash, err := transaction.NewHash(c.String("tx-version"), selector.String(), typed)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "input type: %s\n", typed.Type)
	}

	return printJson(m.w, hashResult{
		Hash:     hash,
		Version:  c.String("tx-version"),
		Selector: selector.String(),
	})
}
