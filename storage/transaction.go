// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
)

// Transaction - writes to any pools applied together by Commit
type Transaction struct {
	dataAccess DataAccess
	batch      *leveldb.Batch
}

func newTransaction(dataAccess DataAccess) *Transaction {
	return &Transaction{
		dataAccess: dataAccess,
		batch:      new(leveldb.Batch),
	}
}

// Put - store a key/value pair
func (trx *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	trx.batch.Put(p.prefixKey(key), value)
}

// Delete - remove a key
func (trx *Transaction) Delete(p *PoolHandle, key []byte) {
	trx.batch.Delete(p.prefixKey(key))
}

// Commit - write all changes
func (trx *Transaction) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()

	err := trx.dataAccess.Write(trx.batch)
	trx.batch.Reset()
	return err
}

// Abort - drop all changes
func (trx *Transaction) Abort() {
	trx.batch.Reset()
}
