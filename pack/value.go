// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pack

// Struct - value of a struct type, keyed by field name
type Struct map[string]interface{}

// List - value of a list type
type List []interface{}

// Typed - a value together with the type it conforms to
type Typed struct {
	Type  Type
	Value interface{}
}

// NewTyped - check that the value conforms and wrap it
func NewTyped(t Type, value interface{}) (Typed, error) {
	if _, err := EncodeValue(t, value); nil != err {
		return Typed{}, err
	}
	return Typed{Type: t, Value: value}, nil
}
