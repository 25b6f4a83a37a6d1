// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
)

// Parameters - everything needed to derive a gateway
type Parameters struct {
	Asset      currency.Currency
	Network    chain.Network
	PublicKey  []byte // the signing network's compressed key
	Commitment Commitment
}

// Gateway - a derived deposit address with its intermediate values
type Gateway struct {
	GHash        [HashLength]byte
	PubKeyHash   []byte
	Script       []byte
	PubKeyScript []byte
	Address      string
}

// Derive - compute a complete gateway from its parameters
func Derive(p Parameters) (*Gateway, error) {
	gHash, err := DeriveCommitment(p.Commitment, p.Network)
	if nil != err {
		return nil, err
	}
	return DeriveFromHash(p.Asset, p.Network, PubKeyHash(p.PublicKey), gHash)
}

// DeriveFromHash - compute a gateway from an existing commitment hash
func DeriveFromHash(asset currency.Currency, network chain.Network, pubKeyHash []byte, gHash [HashLength]byte) (*Gateway, error) {
	address, err := DeriveGatewayAddress(asset, pubKeyHash, gHash, network)
	if nil != err {
		return nil, err
	}
	script, err := DeriveScript(pubKeyHash, gHash)
	if nil != err {
		return nil, err
	}
	pubKeyScript, err := PubKeyScript(pubKeyHash, gHash)
	if nil != err {
		return nil, err
	}
	return &Gateway{
		GHash:        gHash,
		PubKeyHash:   pubKeyHash,
		Script:       script,
		PubKeyScript: pubKeyScript,
		Address:      address,
	}, nil
}
