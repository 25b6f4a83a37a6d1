// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"github.com/bitmark-inc/gatewayd/fault"
)

// PubKeyHashLength - bytes in a HASH160
const PubKeyHashLength = 20

// PubKeyHash - HASH160 of a compressed public key
func PubKeyHash(publicKey []byte) []byte {
	return btcutil.Hash160(publicKey)
}

// DeriveScript - the redeem script of a gateway
func DeriveScript(pubKeyHash []byte, gHash [HashLength]byte) ([]byte, error) {
	if PubKeyHashLength != len(pubKeyHash) {
		return nil, fault.ErrInvalidPublicKeyHash
	}
	return txscript.NewScriptBuilder().
		AddData(gHash[:]).
		AddOp(txscript.OP_DROP).
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pubKeyHash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// ScriptHash - HASH160 of the gateway script
func ScriptHash(pubKeyHash []byte, gHash [HashLength]byte) ([]byte, error) {
	script, err := DeriveScript(pubKeyHash, gHash)
	if nil != err {
		return nil, err
	}
	return btcutil.Hash160(script), nil
}

// PubKeyScript - the P2SH output script that pays to a gateway
//
//   OP_HASH160 <scriptHash> OP_EQUAL
func PubKeyScript(pubKeyHash []byte, gHash [HashLength]byte) ([]byte, error) {
	scriptHash, err := ScriptHash(pubKeyHash, gHash)
	if nil != err {
		return nil, err
	}
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(scriptHash).
		AddOp(txscript.OP_EQUAL).
		Script()
}
