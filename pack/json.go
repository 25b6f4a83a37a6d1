// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/bitmark-inc/gatewayd/fault"
)

// MarshalJSON - scalar types as their name, structs as
// {"struct":[{"name":type},…]} and lists as {"list":type}
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case KindStruct:
		buffer := bytes.NewBufferString(`{"struct":[`)
		for i, f := range t.fields {
			if 0 != i {
				buffer.WriteByte(',')
			}
			name, err := json.Marshal(f.Name)
			if nil != err {
				return nil, err
			}
			ft, err := f.Type.MarshalJSON()
			if nil != err {
				return nil, err
			}
			buffer.WriteByte('{')
			buffer.Write(name)
			buffer.WriteByte(':')
			buffer.Write(ft)
			buffer.WriteByte('}')
		}
		buffer.WriteString(`]}`)
		return buffer.Bytes(), nil

	case KindList:
		elem, err := t.Elem().MarshalJSON()
		if nil != err {
			return nil, err
		}
		return append(append([]byte(`{"list":`), elem...), '}'), nil

	default:
		return json.Marshal(t.kind.String())
	}
}

// UnmarshalJSON - inverse of MarshalJSON
//
// each struct entry must hold exactly one field
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); nil == err {
		kind, ok := scalarKindFromName(name)
		if !ok {
			return fmt.Errorf("type %q: %w", name, fault.ErrInvalidKind)
		}
		*t = Type{kind: kind}
		return nil
	}

	var compound struct {
		Struct []json.RawMessage `json:"struct"`
		List   *Type             `json:"list"`
	}
	if err := json.Unmarshal(data, &compound); nil != err {
		return err
	}

	if nil != compound.List {
		if nil != compound.Struct {
			return fault.ErrInvalidStructType
		}
		*t = NewList(*compound.List)
		return nil
	}
	if nil == compound.Struct {
		return fault.ErrInvalidStructType
	}

	fields := make([]Field, len(compound.Struct))
	for i, raw := range compound.Struct {
		field, err := structEntry(raw)
		if nil != err {
			return err
		}
		fields[i] = field
	}
	s, err := NewStruct(fields...)
	if nil != err {
		return err
	}
	*t = s
	return nil
}

// read {"name": type} token by token so a repeated key is seen instead
// of being collapsed by a map
func structEntry(raw json.RawMessage) (Field, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	token, err := decoder.Token()
	if nil != err {
		return Field{}, err
	}
	if delim, ok := token.(json.Delim); !ok || '{' != delim {
		return Field{}, fault.ErrInvalidStructType
	}

	var field Field
	n := 0
	for decoder.More() {
		token, err := decoder.Token()
		if nil != err {
			return Field{}, err
		}
		name, ok := token.(string)
		if !ok {
			return Field{}, fault.ErrInvalidStructType
		}
		var ft Type
		if err := decoder.Decode(&ft); nil != err {
			return Field{}, err
		}
		if n > 0 {
			if name == field.Name {
				return Field{}, fmt.Errorf("field %q: %w", name, fault.ErrDuplicateFieldName)
			}
			return Field{}, fault.ErrInvalidStructType
		}
		field = Field{Name: name, Type: ft}
		n += 1
	}
	if 0 == n {
		return Field{}, fault.ErrInvalidStructType
	}
	return field, nil
}

// MarshalValueJSON - JSON form of a value
//
// integers are decimal strings, bytes are unpadded base64url and
// struct fields appear in type order
func MarshalValueJSON(t Type, value interface{}) ([]byte, error) {
	// reject non-conforming values before any partial output
	if _, err := EncodeValue(t, value); nil != err {
		return nil, err
	}
	return marshalValue(t, value)
}

func marshalValue(t Type, value interface{}) ([]byte, error) {
	switch t.kind {
	case KindNil:
		return []byte("null"), nil

	case KindBool, KindString:
		return json.Marshal(value)

	case KindU8, KindU16, KindU32, KindU64, KindU128, KindU256:
		n, err := toBigInt(value)
		if nil != err {
			return nil, err
		}
		return json.Marshal(n.String())

	case KindBytes, KindBytes32, KindBytes65:
		var b []byte
		switch v := value.(type) {
		case []byte:
			b = v
		case [32]byte:
			b = v[:]
		case [65]byte:
			b = v[:]
		}
		return json.Marshal(base64.RawURLEncoding.EncodeToString(b))

	case KindStruct:
		fields := structFields(value)
		buffer := bytes.NewBufferString("{")
		for i, f := range t.fields {
			if 0 != i {
				buffer.WriteByte(',')
			}
			name, err := json.Marshal(f.Name)
			if nil != err {
				return nil, err
			}
			v, err := marshalValue(f.Type, fields[f.Name])
			if nil != err {
				return nil, err
			}
			buffer.Write(name)
			buffer.WriteByte(':')
			buffer.Write(v)
		}
		buffer.WriteByte('}')
		return buffer.Bytes(), nil

	case KindList:
		buffer := bytes.NewBufferString("[")
		for i, item := range listItems(value) {
			if 0 != i {
				buffer.WriteByte(',')
			}
			v, err := marshalValue(t.Elem(), item)
			if nil != err {
				return nil, err
			}
			buffer.Write(v)
		}
		buffer.WriteByte(']')
		return buffer.Bytes(), nil

	default:
		return nil, fault.ErrInvalidKind
	}
}

// UnmarshalValueJSON - read the JSON form of a value into its canonical form
func UnmarshalValueJSON(t Type, data []byte) (interface{}, error) {
	switch t.kind {
	case KindNil:
		if "null" != string(bytes.TrimSpace(data)) {
			return nil, fault.ErrTypeMismatch
		}
		return nil, nil

	case KindBool:
		var b bool
		if err := json.Unmarshal(data, &b); nil != err {
			return nil, fault.ErrTypeMismatch
		}
		return b, nil

	case KindU8, KindU16, KindU32, KindU64, KindU128, KindU256:
		n, err := unmarshalInteger(data)
		if nil != err {
			return nil, err
		}
		if n.Sign() < 0 || n.BitLen() > t.kind.bits() {
			return nil, fault.ErrValueOutOfRange
		}
		switch t.kind {
		case KindU8:
			return uint8(n.Uint64()), nil
		case KindU16:
			return uint16(n.Uint64()), nil
		case KindU32:
			return uint32(n.Uint64()), nil
		case KindU64:
			return n.Uint64(), nil
		default:
			return n, nil
		}

	case KindString:
		var s string
		if err := json.Unmarshal(data, &s); nil != err {
			return nil, fault.ErrTypeMismatch
		}
		return s, nil

	case KindBytes, KindBytes32, KindBytes65:
		var s string
		if err := json.Unmarshal(data, &s); nil != err {
			return nil, fault.ErrTypeMismatch
		}
		b, err := DecodeBase64(s)
		if nil != err {
			return nil, err
		}
		switch t.kind {
		case KindBytes32:
			var a [32]byte
			if len(a) != len(b) {
				return nil, fault.ErrWrongLength
			}
			copy(a[:], b)
			return a, nil
		case KindBytes65:
			var a [65]byte
			if len(a) != len(b) {
				return nil, fault.ErrWrongLength
			}
			copy(a[:], b)
			return a, nil
		}
		return b, nil

	case KindStruct:
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); nil != err {
			return nil, fault.ErrTypeMismatch
		}
		if len(raw) > len(t.fields) {
			return nil, fault.ErrTypeMismatch
		}
		s := make(Struct, len(t.fields))
		for _, f := range t.fields {
			r, ok := raw[f.Name]
			if !ok {
				return nil, fmt.Errorf("field %q: %w", f.Name, fault.ErrMissingField)
			}
			v, err := UnmarshalValueJSON(f.Type, r)
			if nil != err {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			s[f.Name] = v
		}
		return s, nil

	case KindList:
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); nil != err {
			return nil, fault.ErrTypeMismatch
		}
		l := make(List, len(raw))
		for i, r := range raw {
			v, err := UnmarshalValueJSON(t.Elem(), r)
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

// MarshalJSON - {"t": type, "v": value}
func (typed Typed) MarshalJSON() ([]byte, error) {
	t, err := typed.Type.MarshalJSON()
	if nil != err {
		return nil, err
	}
	v, err := MarshalValueJSON(typed.Type, typed.Value)
	if nil != err {
		return nil, err
	}
	return json.Marshal(struct {
		T json.RawMessage `json:"t"`
		V json.RawMessage `json:"v"`
	}{
		T: t,
		V: v,
	})
}

// UnmarshalJSON - inverse of MarshalJSON
func (typed *Typed) UnmarshalJSON(data []byte) error {
	var raw struct {
		T Type            `json:"t"`
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(data, &raw); nil != err {
		return err
	}
	if nil == raw.V {
		raw.V = json.RawMessage("null")
	}
	v, err := UnmarshalValueJSON(raw.T, raw.V)
	if nil != err {
		return err
	}
	typed.Type = raw.T
	typed.Value = v
	return nil
}

// DecodeBase64 - accept unpadded or padded base64 in either alphabet
func DecodeBase64(s string) ([]byte, error) {
	for _, encoding := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	} {
		if b, err := encoding.DecodeString(s); nil == err {
			return b, nil
		}
	}
	return nil, fault.ErrTypeMismatch
}

func unmarshalInteger(data []byte) (*big.Int, error) {
	var s string
	if err := json.Unmarshal(data, &s); nil != err {
		var n json.Number
		if err := json.Unmarshal(data, &n); nil != err {
			return nil, fault.ErrTypeMismatch
		}
		s = n.String()
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fault.ErrTypeMismatch
	}
	return n, nil
}

func structFields(value interface{}) map[string]interface{} {
	switch v := value.(type) {
	case Struct:
		return v
	case map[string]interface{}:
		return v
	}
	return nil
}

func listItems(value interface{}) []interface{} {
	switch v := value.(type) {
	case List:
		return v
	case []interface{}:
		return v
	}
	return nil
}
