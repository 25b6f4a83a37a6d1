// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/pack"
)

func TestScalarTypes(t *testing.T) {
	items := []struct {
		t        pack.Type
		expected byte
		name     string
	}{
		{pack.Nil, 0, "nil"},
		{pack.Bool, 1, "bool"},
		{pack.U8, 2, "u8"},
		{pack.U16, 3, "u16"},
		{pack.U32, 4, "u32"},
		{pack.U64, 5, "u64"},
		{pack.U128, 6, "u128"},
		{pack.U256, 7, "u256"},
		{pack.String, 10, "str"},
		{pack.Bytes, 11, "b"},
		{pack.Bytes32, 12, "b32"},
		{pack.Bytes65, 13, "b65"},
	}

	for i, item := range items {
		assert.Equal(t, []byte{item.expected}, pack.EncodeType(item.t), "%d: encoded type", i)
		assert.Equal(t, item.name, item.t.Kind().String(), "%d: name", i)

		decoded, n, err := pack.DecodeType([]byte{item.expected})
		require.NoError(t, err, "%d: decode", i)
		assert.Equal(t, 1, n, "%d: consumed", i)
		assert.True(t, decoded.Equal(item.t), "%d: decoded: %s", i, decoded)
	}
}

func TestSmallStruct(t *testing.T) {
	st, err := pack.NewStruct(
		pack.Field{Name: "a", Type: pack.U8},
		pack.Field{Name: "b", Type: pack.String},
	)
	require.NoError(t, err, "struct")

	typed := pack.Typed{
		Type:  st,
		Value: pack.Struct{"b": "hi", "a": 1},
	}
	buffer, err := pack.EncodeTyped(typed)
	require.NoError(t, err, "encode")

	expected, _ := hex.DecodeString("14" + "00000002" +
		"00000001" + "61" + "02" +
		"00000001" + "62" + "0a" +
		"01" + "00000002" + "6869")
	assert.Equal(t, expected, buffer, "encoding")

	decoded, err := pack.DecodeTyped(buffer)
	require.NoError(t, err, "decode")
	assert.Equal(t, pack.Struct{"a": uint8(1), "b": "hi"}, decoded.Value, "decoded value")
}

func TestUnsignedWidths(t *testing.T) {
	items := []struct {
		t        pack.Type
		value    interface{}
		expected string
	}{
		{pack.U8, 255, "ff"},
		{pack.U16, uint16(0x1234), "1234"},
		{pack.U32, uint32(10000), "00002710"},
		{pack.U64, uint64(1), "0000000000000001"},
		{pack.U128, big.NewInt(1), "00000000000000000000000000000001"},
		{pack.U256, "10000", "0000000000000000000000000000000000000000000000000000000000002710"},
	}

	for i, item := range items {
		buffer, err := pack.EncodeValue(item.t, item.value)
		require.NoError(t, err, "%d: encode", i)
		assert.Equal(t, item.expected, hex.EncodeToString(buffer), "%d: encoding", i)
	}
}

func TestRoundTrip(t *testing.T) {
	var b32 [32]byte
	var b65 [65]byte
	for i := range b65 {
		b65[i] = byte(i)
	}
	b32[31] = 0x7f

	max256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	inner := pack.MustStruct(
		pack.Field{Name: "hash", Type: pack.Bytes},
		pack.Field{Name: "index", Type: pack.U32},
	)
	outer := pack.MustStruct(
		pack.Field{Name: "outpoint", Type: inner},
		pack.Field{Name: "values", Type: pack.NewList(pack.U64)},
		pack.Field{Name: "ok", Type: pack.Bool},
		pack.Field{Name: "empty", Type: pack.Nil},
	)

	items := []pack.Typed{
		{Type: pack.Nil, Value: nil},
		{Type: pack.Bool, Value: true},
		{Type: pack.Bool, Value: false},
		{Type: pack.U8, Value: uint8(200)},
		{Type: pack.U16, Value: uint16(65535)},
		{Type: pack.U32, Value: uint32(4000000000)},
		{Type: pack.U64, Value: uint64(18446744073709551615)},
		{Type: pack.U128, Value: new(big.Int).Lsh(big.NewInt(1), 127)},
		{Type: pack.U256, Value: max256},
		{Type: pack.String, Value: ""},
		{Type: pack.String, Value: "BTC/toEthereum"},
		{Type: pack.Bytes, Value: []byte{}},
		{Type: pack.Bytes, Value: []byte{1, 2, 3}},
		{Type: pack.Bytes32, Value: b32},
		{Type: pack.Bytes65, Value: b65},
		{Type: pack.NewList(pack.String), Value: pack.List{"a", "bc", ""}},
		{Type: pack.NewList(pack.Nil), Value: pack.List{nil, nil}},
		{Type: outer, Value: pack.Struct{
			"outpoint": pack.Struct{"hash": []byte{9, 9}, "index": uint32(3)},
			"values":   pack.List{uint64(1), uint64(2)},
			"ok":       true,
			"empty":    nil,
		}},
	}

	for i, item := range items {
		buffer, err := pack.EncodeTyped(item)
		require.NoError(t, err, "%d: encode %s", i, item.Type)

		decoded, err := pack.DecodeTyped(buffer)
		require.NoError(t, err, "%d: decode %s", i, item.Type)
		assert.True(t, decoded.Type.Equal(item.Type), "%d: type: %s", i, decoded.Type)

		again, err := pack.EncodeTyped(decoded)
		require.NoError(t, err, "%d: re-encode", i)
		assert.Equal(t, buffer, again, "%d: round trip", i)
	}
}

func TestFieldOrderFollowsType(t *testing.T) {
	ab := pack.MustStruct(
		pack.Field{Name: "a", Type: pack.U8},
		pack.Field{Name: "b", Type: pack.U8},
	)
	ba := pack.MustStruct(
		pack.Field{Name: "b", Type: pack.U8},
		pack.Field{Name: "a", Type: pack.U8},
	)
	value := pack.Struct{"a": 1, "b": 2}

	x, err := pack.EncodeValue(ab, value)
	require.NoError(t, err, "ab")
	y, err := pack.EncodeValue(ba, value)
	require.NoError(t, err, "ba")

	assert.Equal(t, []byte{1, 2}, x, "ab order")
	assert.Equal(t, []byte{2, 1}, y, "ba order")
	assert.NotEqual(t, pack.EncodeType(ab), pack.EncodeType(ba), "type order")
}

func TestEncodeErrors(t *testing.T) {
	st := pack.MustStruct(pack.Field{Name: "x", Type: pack.U8})

	items := []struct {
		t     pack.Type
		value interface{}
		check func(error) bool
	}{
		{pack.U8, 256, fault.IsErrRange},
		{pack.U8, -1, fault.IsErrRange},
		{pack.U64, new(big.Int).Lsh(big.NewInt(1), 64), fault.IsErrRange},
		{pack.Bytes32, make([]byte, 31), fault.IsErrLength},
		{pack.Bytes32, [65]byte{}, fault.IsErrLength},
		{pack.Bytes65, make([]byte, 64), fault.IsErrLength},
		{pack.Bool, 1, fault.IsErrInvalid},
		{pack.String, []byte("abc"), fault.IsErrInvalid},
		{pack.String, "\xff", fault.IsErrInvalid},
		{pack.Bytes, "abc", fault.IsErrInvalid},
		{pack.Nil, 0, fault.IsErrInvalid},
		{pack.U32, "12x", fault.IsErrInvalid},
		{st, pack.Struct{}, fault.IsErrInvalid},
		{st, pack.Struct{"x": 1, "y": 2}, fault.IsErrInvalid},
		{st, pack.Struct{"x": 300}, fault.IsErrRange},
		{pack.NewList(pack.U8), pack.List{1, 2, 256}, fault.IsErrRange},
	}

	for i, item := range items {
		_, err := pack.EncodeValue(item.t, item.value)
		require.Error(t, err, "%d: %s expected error", i, item.t)
		assert.True(t, item.check(err), "%d: %s wrong error class: %s", i, item.t, err)
	}

	_, err := pack.EncodeValue(pack.U8, 256)
	assert.Equal(t, fault.ErrValueOutOfRange, err, "u8 overflow")

	_, err = pack.EncodeValue(pack.Bytes32, make([]byte, 31))
	assert.Equal(t, fault.ErrWrongLength, err, "short b32")
}

func TestInvalidStructTypes(t *testing.T) {
	_, err := pack.NewStruct(pack.Field{Name: "", Type: pack.U8})
	assert.Equal(t, fault.ErrEmptyFieldName, err, "empty name")

	_, err = pack.NewStruct(
		pack.Field{Name: "a", Type: pack.U8},
		pack.Field{Name: "a", Type: pack.U16},
	)
	assert.ErrorIs(t, err, fault.ErrDuplicateFieldName, "duplicate name")

	empty, err := pack.NewStruct()
	require.NoError(t, err, "zero fields")
	assert.Equal(t, []byte{20, 0, 0, 0, 0}, pack.EncodeType(empty), "zero field struct")
}

func TestDecodeErrors(t *testing.T) {
	malformed := []string{
		"",
		"08",
		"ff",
		"0a00000005616263",
		"0102",
		"02",
		"0c" + "00",
		"14000000010000000161",
		"1400000001ffffffff",
		"15",
		"1502ffffffff",
		"0100" + "00",
		"0a00000001ff",
	}

	for i, m := range malformed {
		buffer, err := hex.DecodeString(m)
		require.NoError(t, err, "%d: hex", i)

		_, err = pack.DecodeTyped(buffer)
		assert.True(t, fault.IsErrRecord(err), "%d: %q: expected malformed, got: %v", i, m, err)
	}
}

func TestDecodeValueConsumed(t *testing.T) {
	buffer := []byte{0, 0, 0, 2, 'h', 'i', 0xaa, 0xbb}
	v, n, err := pack.DecodeValue(pack.String, buffer)
	require.NoError(t, err, "decode")
	assert.Equal(t, "hi", v, "value")
	assert.Equal(t, 6, n, "consumed")
}

func TestNewTyped(t *testing.T) {
	_, err := pack.NewTyped(pack.U8, 1000)
	assert.Equal(t, fault.ErrValueOutOfRange, err, "range")

	typed, err := pack.NewTyped(pack.U8, 10)
	require.NoError(t, err, "valid")
	assert.Equal(t, 10, typed.Value, "value kept")
}
