// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Type - the description of a packed value
//
// the zero value is the nil type
type Type struct {
	kind   Kind
	fields []Field // KindStruct only, order is significant
	elem   *Type   // KindList only
}

// Field - one named member of a struct type
type Field struct {
	Name string
	Type Type
}

// the scalar types
var (
	Nil     = Type{kind: KindNil}
	Bool    = Type{kind: KindBool}
	U8      = Type{kind: KindU8}
	U16     = Type{kind: KindU16}
	U32     = Type{kind: KindU32}
	U64     = Type{kind: KindU64}
	U128    = Type{kind: KindU128}
	U256    = Type{kind: KindU256}
	String  = Type{kind: KindString}
	Bytes   = Type{kind: KindBytes}
	Bytes32 = Type{kind: KindBytes32}
	Bytes65 = Type{kind: KindBytes65}
)

// NewStruct - create a struct type from an ordered list of fields
//
// field names must be non-empty and unique
func NewStruct(fields ...Field) (Type, error) {
	seen := make(map[string]struct{}, len(fields))
	f := make([]Field, len(fields))
	for i, field := range fields {
		if "" == field.Name {
			return Nil, fault.ErrEmptyFieldName
		}
		if _, ok := seen[field.Name]; ok {
			return Nil, fmt.Errorf("field %q: %w", field.Name, fault.ErrDuplicateFieldName)
		}
		seen[field.Name] = struct{}{}
		f[i] = field
	}
	return Type{
		kind:   KindStruct,
		fields: f,
	}, nil
}

// MustStruct - as NewStruct but panics on error, for static type declarations
func MustStruct(fields ...Field) Type {
	t, err := NewStruct(fields...)
	if nil != err {
		panic(err)
	}
	return t
}

// NewList - create a list type with the given element type
func NewList(elem Type) Type {
	return Type{
		kind: KindList,
		elem: &elem,
	}
}

// Kind - the kind tag of this type
func (t Type) Kind() Kind {
	return t.kind
}

// Fields - a copy of the fields of a struct type
func (t Type) Fields() []Field {
	if KindStruct != t.kind {
		return nil
	}
	f := make([]Field, len(t.fields))
	copy(f, t.fields)
	return f
}

// Field - lookup a struct field type by name
func (t Type) Field(name string) (Type, bool) {
	for _, f := range t.fields {
		if name == f.Name {
			return f.Type, true
		}
	}
	return Nil, false
}

// Elem - the element type of a list type
func (t Type) Elem() Type {
	if KindList != t.kind || nil == t.elem {
		return Nil
	}
	return *t.elem
}

// Equal - structural type equality
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindStruct:
		if len(t.fields) != len(other.fields) {
			return false
		}
		for i, f := range t.fields {
			if f.Name != other.fields[i].Name || !f.Type.Equal(other.fields[i].Type) {
				return false
			}
		}
	case KindList:
		return t.Elem().Equal(other.Elem())
	}
	return true
}

// String - compact description for debugging
func (t Type) String() string {
	switch t.kind {
	case KindStruct:
		s := make([]string, len(t.fields))
		for i, f := range t.fields {
			s[i] = f.Name + ":" + f.Type.String()
		}
		return "struct{" + strings.Join(s, ",") + "}"
	case KindList:
		return "list[" + t.Elem().String() + "]"
	default:
		return t.kind.String()
	}
}
