// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/pack"
)

// CurrentVersion - version string of newly built transactions
const CurrentVersion = "1"

// Transaction - a network transaction as sent and received over RPC
type Transaction struct {
	Hash     Hash        `json:"hash"`
	Version  string      `json:"version"`
	Selector string      `json:"selector"`
	In       pack.Typed  `json:"in"`
	Out      *pack.Typed `json:"out,omitempty"`
}

// New - build a transaction and compute its hash
func New(version string, selector Selector, input pack.Typed) (*Transaction, error) {
	hash, err := NewHash(version, selector.String(), input)
	if nil != err {
		return nil, err
	}
	return &Transaction{
		Hash:     hash,
		Version:  version,
		Selector: selector.String(),
		In:       input,
	}, nil
}

// Verify - check that the hash matches the content
func (tx *Transaction) Verify() error {
	hash, err := NewHash(tx.Version, tx.Selector, tx.In)
	if nil != err {
		return err
	}
	if hash != tx.Hash {
		return fault.ErrHashMismatch
	}
	return nil
}

// OutField - fetch a named field of a struct output
func (tx *Transaction) OutField(name string) (interface{}, bool) {
	if nil == tx.Out {
		return nil, false
	}
	s, ok := tx.Out.Value.(pack.Struct)
	if !ok {
		return nil, false
	}
	v, ok := s[name]
	return v, ok
}
