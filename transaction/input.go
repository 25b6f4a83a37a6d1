// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"math/big"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/pack"
)

// the packed input of a lock-and-mint transaction
var (
	outpointType = pack.MustStruct(
		pack.Field{Name: "hash", Type: pack.Bytes},
		pack.Field{Name: "index", Type: pack.U32},
	)
	outputType = pack.MustStruct(
		pack.Field{Name: "outpoint", Type: outpointType},
		pack.Field{Name: "value", Type: pack.U256},
		pack.Field{Name: "pubKeyScript", Type: pack.Bytes},
	)

	// MintInputType - field order is part of the transaction hash
	MintInputType = pack.MustStruct(
		pack.Field{Name: "output", Type: outputType},
		pack.Field{Name: "payload", Type: pack.Bytes},
		pack.Field{Name: "phash", Type: pack.Bytes32},
		pack.Field{Name: "token", Type: pack.String},
		pack.Field{Name: "to", Type: pack.String},
		pack.Field{Name: "nonce", Type: pack.Bytes32},
		pack.Field{Name: "nhash", Type: pack.Bytes32},
		pack.Field{Name: "ghash", Type: pack.Bytes32},
		pack.Field{Name: "gpubkey", Type: pack.Bytes},
	)

	// BurnInputType - the packed input of a burn-and-release transaction
	BurnInputType = pack.MustStruct(
		pack.Field{Name: "ref", Type: pack.U256},
		pack.Field{Name: "to", Type: pack.String},
		pack.Field{Name: "amount", Type: pack.U256},
		pack.Field{Name: "nonce", Type: pack.Bytes32},
		pack.Field{Name: "nhash", Type: pack.Bytes32},
	)
)

// MintInput - the parts of a lock-and-mint input
//
// Token and To are hex addresses on the host chain without a 0x prefix
type MintInput struct {
	TxID         []byte
	Index        uint32
	Value        *big.Int
	PubKeyScript []byte
	Payload      []byte
	PHash        [32]byte
	Token        string
	To           string
	Nonce        [32]byte
	NHash        [32]byte
	GHash        [32]byte
	GPubKey      []byte
}

// Typed - the packed form of the input
func (input MintInput) Typed() (pack.Typed, error) {
	if nil == input.Value || input.Value.Sign() < 0 {
		return pack.Typed{}, fault.ErrInvalidAmount
	}
	return pack.NewTyped(MintInputType, pack.Struct{
		"output": pack.Struct{
			"outpoint": pack.Struct{
				"hash":  input.TxID,
				"index": input.Index,
			},
			"value":        input.Value,
			"pubKeyScript": input.PubKeyScript,
		},
		"payload": input.Payload,
		"phash":   input.PHash,
		"token":   input.Token,
		"to":      input.To,
		"nonce":   input.Nonce,
		"nhash":   input.NHash,
		"ghash":   input.GHash,
		"gpubkey": input.GPubKey,
	})
}

// BurnInput - the parts of a burn-and-release input
//
// Ref is the burn counter emitted by the host chain contract and To
// is the release address on the origin chain
type BurnInput struct {
	Ref    *big.Int
	To     string
	Amount *big.Int
	Nonce  [32]byte
	NHash  [32]byte
}

// Typed - the packed form of the input
func (input BurnInput) Typed() (pack.Typed, error) {
	if nil == input.Ref || nil == input.Amount || input.Amount.Sign() <= 0 {
		return pack.Typed{}, fault.ErrInvalidAmount
	}
	if "" == input.To {
		return pack.Typed{}, fault.ErrMissingDestination
	}
	return pack.NewTyped(BurnInputType, pack.Struct{
		"ref":    input.Ref,
		"to":     input.To,
		"amount": input.Amount,
		"nonce":  input.Nonce,
		"nhash":  input.NHash,
	})
}
