// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/pack"
)

// HashLength - number of bytes in a transaction hash
const HashLength = 32

// Hash - the identity of a transaction
//
// text form is unpadded base64url, as used on the RPC interface
type Hash [HashLength]byte

// NewHash - compute the hash of a transaction from its parts
func NewHash(version string, selector string, input pack.Typed) (Hash, error) {
	encoded, err := pack.EncodeTyped(input)
	if nil != err {
		return Hash{}, err
	}

	buffer := make([]byte, 0, 8+len(version)+len(selector)+len(encoded))
	buffer = appendString(buffer, version)
	buffer = appendString(buffer, selector)
	buffer = append(buffer, encoded...)

	return sha256.Sum256(buffer), nil
}

func appendString(buffer []byte, s string) []byte {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(s)))
	buffer = append(buffer, length[:]...)
	return append(buffer, s...)
}

// String - for the fmt package (%s)
func (hash Hash) String() string {
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// GoString - hex form for %#v
func (hash Hash) GoString() string {
	return "<tx:" + hex.EncodeToString(hash[:]) + ">"
}

// IsZero - true if no hash has been assigned
func (hash Hash) IsZero() bool {
	return Hash{} == hash
}

// MarshalText - hash as base64url text
func (hash Hash) MarshalText() ([]byte, error) {
	return []byte(hash.String()), nil
}

// UnmarshalText - base64 text (any alphabet, padded or not) to a hash
func (hash *Hash) UnmarshalText(s []byte) error {
	b, err := pack.DecodeBase64(string(s))
	if nil != err {
		return fault.ErrInvalidHash
	}
	return HashFromBytes(hash, b)
}

// HashFromBytes - convert and validate a byte slice to a hash
func HashFromBytes(hash *Hash, buffer []byte) error {
	if HashLength != len(buffer) {
		return fault.ErrInvalidHash
	}
	copy(hash[:], buffer)
	return nil
}
