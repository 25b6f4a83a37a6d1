// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/gatewayd/fault"
)

// PoolHandle - the set of keys sharing one prefix
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess DataAccess
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

func newPool(prefix byte, dataAccess DataAccess) *PoolHandle {
	limit := []byte(nil)
	if prefix < 0xff {
		limit = []byte{prefix + 1}
	}
	return &PoolHandle{
		prefix:     prefix,
		limit:      limit,
		dataAccess: dataAccess,
	}
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key, nil if absent
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == p || nil == p.dataAccess {
		return nil, fault.ErrNotInitialised
	}
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == p || nil == p.dataAccess {
		return false, fault.ErrNotInitialised
	}
	return p.dataAccess.Has(p.prefixKey(key))
}
