// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/storage"
)

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// NAME=VALUE pairs from repeated --define options
func parseVariables(defines []string) (map[string]string, error) {
	variables := make(map[string]string)
	for _, d := range defines {
		s := strings.SplitN(d, "=", 2)
		if 2 != len(s) || "" == strings.TrimSpace(s[0]) {
			return nil, fmt.Errorf("define: %q is not NAME=VALUE", d)
		}
		variables[strings.TrimSpace(s[0])] = s[1]
	}
	return variables, nil
}

func checkAsset(symbol string) (currency.Currency, error) {
	if "" == symbol {
		return currency.Nothing, fmt.Errorf("asset is required")
	}
	return currency.FromString(strings.ToUpper(symbol))
}

func checkRequired(name string, value string) (string, error) {
	if "" == value {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

// optional hex, with or without 0x
func checkHex(name string, value string) ([]byte, error) {
	if "" == value {
		return nil, nil
	}
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	b, err := hex.DecodeString(value)
	if nil != err {
		return nil, fmt.Errorf("%s: %q is not hex", name, value)
	}
	return b, nil
}

func checkNonce(value string) (*[32]byte, error) {
	b, err := checkHex("nonce", value)
	if nil != err || nil == b {
		return nil, err
	}
	if 32 != len(b) {
		return nil, fmt.Errorf("nonce: must be 32 bytes, not %d", len(b))
	}
	var nonce [32]byte
	copy(nonce[:], b)
	return &nonce, nil
}

// open the transfer database, the caller must call storage.Finalise
func openStorage(configuration *Configuration, readOnly bool) (storage.TransferStore, error) {
	if err := storage.Initialise(configuration.Database.Name, readOnly); nil != err {
		return storage.TransferStore{}, err
	}
	return storage.TransferStore{}, nil
}
