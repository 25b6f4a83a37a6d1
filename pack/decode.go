// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/bitmark-inc/gatewayd/fault"
)

const (
	// nesting limit for struct and list types
	maximumDepth = 64

	// limit on list elements whose encoding is zero bytes long
	maximumEmptyElements = 65536
)

// DecodeType - read a type from the start of a buffer
//
// returns the type and the number of bytes consumed
func DecodeType(buffer []byte) (Type, int, error) {
	d := decoder{buffer: buffer}
	t, err := d.decodeType(0)
	if nil != err {
		return Nil, 0, err
	}
	return t, d.n, nil
}

// DecodeValue - read a value of the given type from the start of a buffer
//
// returns the value and the number of bytes consumed
func DecodeValue(t Type, buffer []byte) (interface{}, int, error) {
	d := decoder{buffer: buffer}
	v, err := d.decodeValue(t)
	if nil != err {
		return nil, 0, err
	}
	return v, d.n, nil
}

// DecodeTyped - read a complete type and value encoding
//
// the buffer must be consumed exactly
func DecodeTyped(buffer []byte) (Typed, error) {
	d := decoder{buffer: buffer}
	t, err := d.decodeType(0)
	if nil != err {
		return Typed{}, err
	}
	v, err := d.decodeValue(t)
	if nil != err {
		return Typed{}, err
	}
	if d.n != len(buffer) {
		return Typed{}, fmt.Errorf("%d trailing bytes: %w", len(buffer)-d.n, fault.ErrMalformedEncoding)
	}
	return Typed{Type: t, Value: v}, nil
}

type decoder struct {
	buffer []byte
	n      int
}

func (d *decoder) remaining() int {
	return len(d.buffer) - d.n
}

func (d *decoder) take(count int) ([]byte, error) {
	if count < 0 || d.remaining() < count {
		return nil, fault.ErrMalformedEncoding
	}
	b := d.buffer[d.n : d.n+count]
	d.n += count
	return b, nil
}

func (d *decoder) uint32() (uint32, error) {
	b, err := d.take(4)
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// length prefixed bytes
func (d *decoder) bytes() ([]byte, error) {
	length, err := d.uint32()
	if nil != err {
		return nil, err
	}
	if uint64(length) > uint64(d.remaining()) {
		return nil, fault.ErrMalformedEncoding
	}
	return d.take(int(length))
}

func (d *decoder) string() (string, error) {
	b, err := d.bytes()
	if nil != err {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fault.ErrMalformedEncoding
	}
	return string(b), nil
}

func (d *decoder) decodeType(depth int) (Type, error) {
	if depth > maximumDepth {
		return Nil, fault.ErrMalformedEncoding
	}
	b, err := d.take(1)
	if nil != err {
		return Nil, err
	}
	kind := Kind(b[0])

	switch kind {
	case KindStruct:
		count, err := d.uint32()
		if nil != err {
			return Nil, err
		}
		// every field needs at least a length and a kind
		if uint64(count)*5 > uint64(d.remaining()) {
			return Nil, fault.ErrMalformedEncoding
		}
		fields := make([]Field, count)
		for i := range fields {
			name, err := d.string()
			if nil != err {
				return Nil, err
			}
			ft, err := d.decodeType(depth + 1)
			if nil != err {
				return Nil, err
			}
			fields[i] = Field{Name: name, Type: ft}
		}
		return NewStruct(fields...)

	case KindList:
		elem, err := d.decodeType(depth + 1)
		if nil != err {
			return Nil, err
		}
		return NewList(elem), nil

	default:
		if !kind.IsValid() {
			return Nil, fmt.Errorf("kind: %d: %w", b[0], fault.ErrMalformedEncoding)
		}
		return Type{kind: kind}, nil
	}
}

func (d *decoder) decodeValue(t Type) (interface{}, error) {

	switch t.kind {

	case KindNil:
		return nil, nil

	case KindBool:
		b, err := d.take(1)
		if nil != err {
			return nil, err
		}
		switch b[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return nil, fault.ErrMalformedEncoding
		}

	case KindU8:
		b, err := d.take(1)
		if nil != err {
			return nil, err
		}
		return b[0], nil

	case KindU16:
		b, err := d.take(2)
		if nil != err {
			return nil, err
		}
		return binary.BigEndian.Uint16(b), nil

	case KindU32:
		return d.uint32()

	case KindU64:
		b, err := d.take(8)
		if nil != err {
			return nil, err
		}
		return binary.BigEndian.Uint64(b), nil

	case KindU128, KindU256:
		b, err := d.take(t.kind.bits() / 8)
		if nil != err {
			return nil, err
		}
		return new(big.Int).SetBytes(b), nil

	case KindString:
		return d.string()

	case KindBytes:
		b, err := d.bytes()
		if nil != err {
			return nil, err
		}
		return append([]byte{}, b...), nil

	case KindBytes32:
		b, err := d.take(32)
		if nil != err {
			return nil, err
		}
		var a [32]byte
		copy(a[:], b)
		return a, nil

	case KindBytes65:
		b, err := d.take(65)
		if nil != err {
			return nil, err
		}
		var a [65]byte
		copy(a[:], b)
		return a, nil

	case KindStruct:
		s := make(Struct, len(t.fields))
		for _, f := range t.fields {
			v, err := d.decodeValue(f.Type)
			if nil != err {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			s[f.Name] = v
		}
		return s, nil

	case KindList:
		count, err := d.uint32()
		if nil != err {
			return nil, err
		}
		elem := t.Elem()
		if minimumSize(elem) > 0 {
			if uint64(count)*uint64(minimumSize(elem)) > uint64(d.remaining()) {
				return nil, fault.ErrMalformedEncoding
			}
		} else if count > maximumEmptyElements {
			return nil, fault.ErrMalformedEncoding
		}
		l := make(List, count)
		for i := range l {
			v, err := d.decodeValue(elem)
			if nil != err {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			l[i] = v
		}
		return l, nil

	default:
		return nil, fault.ErrInvalidKind
	}
}

// smallest number of bytes that a value of the type can encode to
func minimumSize(t Type) int {
	switch t.kind {
	case KindNil:
		return 0
	case KindBool:
		return 1
	case KindString, KindBytes, KindList:
		return 4
	case KindStruct:
		n := 0
		for _, f := range t.fields {
			n += minimumSize(f.Type)
		}
		return n
	}
	if bits := t.kind.bits(); 0 != bits {
		return bits / 8
	}
	return t.kind.fixedLength()
}
