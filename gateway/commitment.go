// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/fault"
)

// HashLength - bytes in every keccak256 derived value
const HashLength = 32

// Commitment - the parameters bound into a gateway address
type Commitment struct {
	PHash  [HashLength]byte
	Amount *big.Int
	Token  common.Address
	To     common.Address
	Nonce  [HashLength]byte
}

// ABI argument lists, fixed at start up
var (
	commitmentArguments abi.Arguments
	nonceArguments      abi.Arguments
)

func init() {
	bytes32 := mustType("bytes32")
	address := mustType("address")
	commitmentArguments = abi.Arguments{
		{Name: "pHash", Type: bytes32},
		{Name: "amount", Type: mustType("uint256")},
		{Name: "token", Type: address},
		{Name: "to", Type: address},
		{Name: "nonce", Type: bytes32},
	}
	nonceArguments = abi.Arguments{
		{Name: "nonce", Type: bytes32},
		{Name: "txid", Type: mustType("bytes")},
		{Name: "index", Type: mustType("uint32")},
	}
}

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if nil != err {
		fault.PanicWithError("abi type: "+name, err)
	}
	return t
}

// Keccak256 - hash of the concatenated buffers
func Keccak256(data ...[]byte) [HashLength]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var result [HashLength]byte
	copy(result[:], h.Sum(nil))
	return result
}

// PHash - hash of the contract call payload
func PHash(payload []byte) [HashLength]byte {
	return Keccak256(payload)
}

// DeriveCommitment - the commitment hash (gHash) of a mint
//
// keccak256(abi.encode(pHash, amount, token, to, nonce))
func DeriveCommitment(c Commitment, network chain.Network) ([HashLength]byte, error) {
	if !chain.Valid(string(network)) {
		return [HashLength]byte{}, fault.ErrUnsupportedNetwork
	}
	if nil == c.Amount || c.Amount.Sign() < 0 {
		return [HashLength]byte{}, fault.ErrInvalidAmount
	}
	packed, err := commitmentArguments.Pack(c.PHash, c.Amount, c.Token, c.To, c.Nonce)
	if nil != err {
		return [HashLength]byte{}, err
	}
	return Keccak256(packed), nil
}

// NHash - the hash that makes each deposit unique to the network
//
// keccak256(abi.encode(nonce, txid, index))
func NHash(nonce [HashLength]byte, txID []byte, index uint32) ([HashLength]byte, error) {
	packed, err := nonceArguments.Pack(nonce, txID, index)
	if nil != err {
		return [HashLength]byte{}, err
	}
	return Keccak256(packed), nil
}

// ParseHostAddress - a host chain (EVM) address in hex, with or
// without the 0x prefix
func ParseHostAddress(s string) (common.Address, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fault.ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}
