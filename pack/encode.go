// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/bitmark-inc/gatewayd/fault"
)

// EncodeType - the byte form of a type
func EncodeType(t Type) []byte {
	return appendType(nil, t)
}

// EncodeValue - the byte form of a value, which must conform to the type
func EncodeValue(t Type, value interface{}) ([]byte, error) {
	return appendValue(make([]byte, 0, 64), t, value)
}

// EncodeTyped - type bytes immediately followed by value bytes
func EncodeTyped(typed Typed) ([]byte, error) {
	buffer := appendType(make([]byte, 0, 128), typed.Type)
	return appendValue(buffer, typed.Type, typed.Value)
}

func appendType(buffer []byte, t Type) []byte {
	buffer = append(buffer, byte(t.kind))
	switch t.kind {
	case KindStruct:
		buffer = appendUint32(buffer, uint32(len(t.fields)))
		for _, f := range t.fields {
			buffer = appendString(buffer, f.Name)
			buffer = appendType(buffer, f.Type)
		}
	case KindList:
		buffer = appendType(buffer, t.Elem())
	}
	return buffer
}

func appendValue(buffer []byte, t Type, value interface{}) ([]byte, error) {

	switch t.kind {

	case KindNil:
		if nil != value {
			return nil, fault.ErrTypeMismatch
		}
		return buffer, nil

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fault.ErrTypeMismatch
		}
		if b {
			return append(buffer, 1), nil
		}
		return append(buffer, 0), nil

	case KindU8, KindU16, KindU32, KindU64, KindU128, KindU256:
		n, err := toBigInt(value)
		if nil != err {
			return nil, err
		}
		bits := t.kind.bits()
		if n.Sign() < 0 || n.BitLen() > bits {
			return nil, fault.ErrValueOutOfRange
		}
		return append(buffer, n.FillBytes(make([]byte, bits/8))...), nil

	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, fault.ErrTypeMismatch
		}
		if !utf8.ValidString(s) {
			return nil, fault.ErrInvalidUTF8
		}
		if uint64(len(s)) > math.MaxUint32 {
			return nil, fault.ErrValueOutOfRange
		}
		return appendString(buffer, s), nil

	case KindBytes:
		b, ok := value.([]byte)
		if !ok {
			return nil, fault.ErrTypeMismatch
		}
		if uint64(len(b)) > math.MaxUint32 {
			return nil, fault.ErrValueOutOfRange
		}
		return appendBytes(buffer, b), nil

	case KindBytes32, KindBytes65:
		b, err := fixedBytes(t.kind, value)
		if nil != err {
			return nil, err
		}
		return append(buffer, b...), nil

	case KindStruct:
		return appendStruct(buffer, t, value)

	case KindList:
		var items []interface{}
		switch v := value.(type) {
		case List:
			items = v
		case []interface{}:
			items = v
		default:
			return nil, fault.ErrTypeMismatch
		}
		if uint64(len(items)) > math.MaxUint32 {
			return nil, fault.ErrValueOutOfRange
		}
		buffer = appendUint32(buffer, uint32(len(items)))
		elem := t.Elem()
		for i, item := range items {
			var err error
			buffer, err = appendValue(buffer, elem, item)
			if nil != err {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return buffer, nil

	default:
		return nil, fault.ErrInvalidKind
	}
}

// fields are written in type order, never in map order
func appendStruct(buffer []byte, t Type, value interface{}) ([]byte, error) {
	var fields map[string]interface{}
	switch v := value.(type) {
	case Struct:
		fields = v
	case map[string]interface{}:
		fields = v
	default:
		return nil, fault.ErrTypeMismatch
	}
	if len(fields) > len(t.fields) {
		return nil, fault.ErrTypeMismatch
	}
	for _, f := range t.fields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, fmt.Errorf("field %q: %w", f.Name, fault.ErrMissingField)
		}
		var err error
		buffer, err = appendValue(buffer, f.Type, v)
		if nil != err {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return buffer, nil
}

// accept any Go integer, a big.Int or a decimal string
func toBigInt(value interface{}) (*big.Int, error) {
	switch n := value.(type) {
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case *big.Int:
		if nil == n {
			return nil, fault.ErrTypeMismatch
		}
		return n, nil
	case big.Int:
		return &n, nil
	case string:
		b, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, fault.ErrTypeMismatch
		}
		return b, nil
	default:
		return nil, fault.ErrTypeMismatch
	}
}

func fixedBytes(kind Kind, value interface{}) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case [32]byte:
		if KindBytes32 != kind {
			return nil, fault.ErrWrongLength
		}
		b = v[:]
	case [65]byte:
		if KindBytes65 != kind {
			return nil, fault.ErrWrongLength
		}
		b = v[:]
	case []byte:
		b = v
	default:
		return nil, fault.ErrTypeMismatch
	}
	if kind.fixedLength() != len(b) {
		return nil, fault.ErrWrongLength
	}
	return b, nil
}

func appendUint32(buffer []byte, n uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return append(buffer, b[:]...)
}

func appendString(buffer []byte, s string) []byte {
	buffer = appendUint32(buffer, uint32(len(s)))
	return append(buffer, s...)
}

func appendBytes(buffer []byte, data []byte) []byte {
	buffer = appendUint32(buffer, uint32(len(data)))
	return append(buffer, data...)
}
