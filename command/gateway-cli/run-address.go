// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/gateway"
)

type addressResult struct {
	Address      string `json:"address"`
	GHash        string `json:"gHash"`
	PHash        string `json:"pHash"`
	Nonce        string `json:"nonce"`
	Script       string `json:"script"`
	PubKeyScript string `json:"pubKeyScript"`
}

func runAddress(c *cli.Context) error {

	m := getMetadata(c)

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}
	to, err := checkRequired("to", c.String("to"))
	if nil != err {
		return err
	}
	token, err := checkRequired("token", c.String("token"))
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")
	payload, err := checkHex("payload", c.String("payload"))
	if nil != err {
		return err
	}
	nonce, err := checkNonce(c.String("nonce"))
	if nil != err {
		return err
	}
	if nil == nonce {
		nonce = new([32]byte)
		if _, err := rand.Read(nonce[:]); nil != err {
			return err
		}
	}

	toAddress, err := gateway.ParseHostAddress(to)
	if nil != err {
		return err
	}
	tokenAddress, err := gateway.ParseHostAddress(token)
	if nil != err {
		return err
	}

	pHash := gateway.PHash(payload)
	g, err := gateway.Derive(gateway.Parameters{
		Asset:     asset,
		Network:   m.config.network,
		PublicKey: m.config.publicKey,
		Commitment: gateway.Commitment{
			PHash:  pHash,
			Amount: new(big.Int).SetUint64(amount),
			Token:  tokenAddress,
			To:     toAddress,
			Nonce:  *nonce,
		},
	})
	if nil != err {
		return err
	}

	return printJson(m.w, addressResult{
		Address:      g.Address,
		GHash:        hex.EncodeToString(g.GHash[:]),
		PHash:        hex.EncodeToString(pHash[:]),
		Nonce:        hex.EncodeToString(nonce[:]),
		Script:       hex.EncodeToString(g.Script),
		PubKeyScript: hex.EncodeToString(g.PubKeyScript),
	})
}
