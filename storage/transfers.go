// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transfer"
)

// number of index entries read at a time
const listBatchSize = 100

// TransferStore - transfers kept in the Transfers and Created pools
type TransferStore struct{}

// Put - create or replace a transfer record
func (TransferStore) Put(t *transfer.Transfer) error {
	if nil == t || "" == t.ID {
		return fault.ErrInvalidTransfer
	}

	packed, err := msgpack.Marshal(t)
	if nil != err {
		return err
	}

	trx, err := NewDBTransaction()
	if nil != err {
		return err
	}
	trx.Put(Pool.Transfers, []byte(t.ID), packed)
	trx.Put(Pool.Created, createdKey(t), []byte(t.ID))
	return trx.Commit()
}

// Get - read a transfer
func (TransferStore) Get(id string) (*transfer.Transfer, error) {
	packed, err := Pool.Transfers.Get([]byte(id))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, fault.ErrTransferNotFound
	}

	var t transfer.Transfer
	if err := msgpack.Unmarshal(packed, &t); nil != err {
		return nil, err
	}
	return &t, nil
}

// Has - check if a transfer is stored
func (TransferStore) Has(id string) (bool, error) {
	return Pool.Transfers.Has([]byte(id))
}

// List - all transfers, oldest first
func (s TransferStore) List() ([]*transfer.Transfer, error) {
	return s.fetch(Pool.Created.NewFetchCursor())
}

// Since - transfers created at or after a time, oldest first
func (s TransferStore) Since(created time.Time) ([]*transfer.Transfer, error) {
	start := make([]byte, 8)
	binary.BigEndian.PutUint64(start, uint64(created.UnixNano()))
	return s.fetch(Pool.Created.NewFetchCursor().Seek(start))
}

// read the index in batches so a long list is not held by one iterator
func (s TransferStore) fetch(cursor *FetchCursor) ([]*transfer.Transfer, error) {
	transfers := make([]*transfer.Transfer, 0)
	for {
		elements, err := cursor.Fetch(listBatchSize)
		if nil != err {
			return nil, err
		}
		for _, e := range elements {
			t, err := s.Get(string(e.Value))
			if nil != err {
				return nil, err
			}
			transfers = append(transfers, t)
		}
		if len(elements) < listBatchSize {
			return transfers, nil
		}
	}
}

// Delete - remove a transfer and its index entry
func (s TransferStore) Delete(id string) error {
	t, err := s.Get(id)
	if nil != err {
		return err
	}

	trx, err := NewDBTransaction()
	if nil != err {
		return err
	}
	trx.Delete(Pool.Transfers, []byte(id))
	trx.Delete(Pool.Created, createdKey(t))
	return trx.Commit()
}

// created ++ id
func createdKey(t *transfer.Transfer) []byte {
	key := make([]byte, 8, 8+len(t.ID))
	binary.BigEndian.PutUint64(key, uint64(t.Created.UnixNano()))
	return append(key, t.ID...)
}
