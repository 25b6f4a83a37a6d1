// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pack - typed binary encoding used by the signing network
//
// Every value is described by a Type.  A type encodes as a single kind
// byte, except for structs which carry their field names and field
// types, and lists which carry their element type.  Values encode in
// big endian fixed width for unsigned integers, with a 32 bit length
// prefix for strings and variable bytes and as raw bytes for the fixed
// length byte arrays.
//
// canonical Go forms of decoded values:
//
//   nil            nil
//   bool           bool
//   u8 … u64       uint8, uint16, uint32, uint64
//   u128, u256     *big.Int
//   str            string
//   b              []byte
//   b32, b65       [32]byte, [65]byte
//   struct         pack.Struct
//   list           pack.List
package pack
