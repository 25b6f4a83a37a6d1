// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack

import (
	"fmt"
)

// Kind - the single byte tag that starts every encoded type
type Kind byte

// the kind tags - values are fixed by the wire format
const (
	KindNil     Kind = 0
	KindBool    Kind = 1
	KindU8      Kind = 2
	KindU16     Kind = 3
	KindU32     Kind = 4
	KindU64     Kind = 5
	KindU128    Kind = 6
	KindU256    Kind = 7
	KindString  Kind = 10
	KindBytes   Kind = 11
	KindBytes32 Kind = 12
	KindBytes65 Kind = 13
	KindStruct  Kind = 20
	KindList    Kind = 21
)

var kindNames = map[Kind]string{
	KindNil:     "nil",
	KindBool:    "bool",
	KindU8:      "u8",
	KindU16:     "u16",
	KindU32:     "u32",
	KindU64:     "u64",
	KindU128:    "u128",
	KindU256:    "u256",
	KindString:  "str",
	KindBytes:   "b",
	KindBytes32: "b32",
	KindBytes65: "b65",
	KindStruct:  "struct",
	KindList:    "list",
}

// String - short name as used in the JSON form of a type
func (kind Kind) String() string {
	if s, ok := kindNames[kind]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", byte(kind))
}

// IsValid - true for every tag in the wire table
func (kind Kind) IsValid() bool {
	_, ok := kindNames[kind]
	return ok
}

// width in bits of an unsigned integer kind, zero for anything else
func (kind Kind) bits() int {
	switch kind {
	case KindU8:
		return 8
	case KindU16:
		return 16
	case KindU32:
		return 32
	case KindU64:
		return 64
	case KindU128:
		return 128
	case KindU256:
		return 256
	default:
		return 0
	}
}

// length of a fixed byte array kind, zero for anything else
func (kind Kind) fixedLength() int {
	switch kind {
	case KindBytes32:
		return 32
	case KindBytes65:
		return 65
	default:
		return 0
	}
}

// lookup a scalar kind from its JSON name
func scalarKindFromName(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name && KindStruct != k && KindList != k {
			return k, true
		}
	}
	return KindNil, false
}
