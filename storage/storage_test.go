// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/storage"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
)

var baseTime = time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)

func newTransfer(t *testing.T, id string, offset time.Duration) *transfer.Transfer {
	nonce := [32]byte{1, 2, 3}
	tr, err := transfer.New(transfer.Parameters{
		ID:        id,
		Direction: transaction.Mint,
		Network:   chain.Testnet,
		Asset:     currency.Bitcoin,
		Host:      "Ethereum",
		To:        "0x7DDFA2e5435027f6e13Ca8Db2f32ebd5551158Bb",
		Token:     "0x0A9ADD98C076448CBcFAcf5E457DA12ddbEF4A8f",
		Amount:    10000,
		Nonce:     &nonce,
		Payload:   []byte{0xaa, 0xbb},
	}, baseTime.Add(offset))
	require.NoError(t, err, "new transfer")
	return tr
}

func TestInitialiseTwice(t *testing.T) {
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise")
}

func TestPutGet(t *testing.T) {
	store := storage.TransferStore{}

	tr := newTransfer(t, "put-get", 0)
	_, err := tr.Apply(transfer.DepositSeen, "ab01:0", "", baseTime.Add(time.Minute))
	require.NoError(t, err, "apply")
	tr.Deposit = &datasource.Deposit{TxID: "ab01", Index: 0, Amount: 10000, Confirmations: 1}

	require.NoError(t, store.Put(tr), "put")

	read, err := store.Get("put-get")
	require.NoError(t, err, "get")

	assert.Equal(t, tr.ID, read.ID, "id")
	assert.Equal(t, transaction.Mint, read.Direction, "direction")
	assert.Equal(t, chain.Testnet, read.Network, "network")
	assert.Equal(t, currency.Bitcoin, read.Asset, "asset")
	assert.Equal(t, tr.Nonce, read.Nonce, "nonce")
	assert.Equal(t, tr.Payload, read.Payload, "payload")
	assert.True(t, tr.Created.Equal(read.Created), "created")
	assert.True(t, tr.Expiry.Equal(read.Expiry), "expiry")
	assert.Equal(t, transfer.SourceSettling, read.State, "state")
	assert.Equal(t, tr.Transactions, read.Transactions, "transactions")
	require.Len(t, read.History, 1, "history")
	assert.Equal(t, transfer.DepositSeen, read.History[0].Event, "event")
	assert.Equal(t, tr.Deposit, read.Deposit, "deposit")
}

func TestGetMissing(t *testing.T) {
	_, err := storage.TransferStore{}.Get("no-such-transfer")
	assert.Equal(t, fault.ErrTransferNotFound, err, "missing")
}

func TestListInCreationOrder(t *testing.T) {
	store := storage.TransferStore{}

	// written out of order
	for _, i := range []int{3, 1, 2} {
		tr := newTransfer(t, fmt.Sprintf("list-%d", i), time.Duration(i)*time.Hour)
		require.NoError(t, store.Put(tr), "put: %d", i)
	}

	transfers, err := store.List()
	require.NoError(t, err, "list")

	ids := make([]string, 0, len(transfers))
	for _, tr := range transfers {
		if len(tr.ID) > 5 && "list-" == tr.ID[:5] {
			ids = append(ids, tr.ID)
		}
	}
	assert.Equal(t, []string{"list-1", "list-2", "list-3"}, ids, "order")
}

func TestReplaceKeepsSingleIndex(t *testing.T) {
	store := storage.TransferStore{}

	tr := newTransfer(t, "replace", 10*time.Hour)
	require.NoError(t, store.Put(tr), "first put")
	_, err := tr.Apply(transfer.Cancelled, "", "cancelled", baseTime)
	require.NoError(t, err, "apply")
	require.NoError(t, store.Put(tr), "second put")

	transfers, err := store.List()
	require.NoError(t, err, "list")
	count := 0
	for _, item := range transfers {
		if "replace" == item.ID {
			count += 1
			assert.Equal(t, transfer.Errored, item.State, "state")
			assert.Equal(t, "cancelled", item.Reason, "reason")
		}
	}
	assert.Equal(t, 1, count, "entries")
}

func TestDelete(t *testing.T) {
	store := storage.TransferStore{}

	tr := newTransfer(t, "delete", 20*time.Hour)
	require.NoError(t, store.Put(tr), "put")
	require.NoError(t, store.Delete("delete"), "delete")

	_, err := store.Get("delete")
	assert.Equal(t, fault.ErrTransferNotFound, err, "deleted")

	has, err := store.Has("delete")
	require.NoError(t, err, "has")
	assert.False(t, has, "has")
}

func TestHas(t *testing.T) {
	store := storage.TransferStore{}

	has, err := store.Has("has")
	require.NoError(t, err, "has before")
	assert.False(t, has, "absent")

	require.NoError(t, store.Put(newTransfer(t, "has", 30*time.Hour)), "put")

	has, err = store.Has("has")
	require.NoError(t, err, "has after")
	assert.True(t, has, "present")
}

func TestSince(t *testing.T) {
	store := storage.TransferStore{}

	for _, i := range []int{42, 40, 41} {
		tr := newTransfer(t, fmt.Sprintf("since-%d", i), time.Duration(i)*time.Hour)
		require.NoError(t, store.Put(tr), "put: %d", i)
	}

	transfers, err := store.Since(baseTime.Add(41 * time.Hour))
	require.NoError(t, err, "since")

	ids := make([]string, 0, len(transfers))
	for _, tr := range transfers {
		assert.False(t, tr.Created.Before(baseTime.Add(41*time.Hour)), "created: %s", tr.ID)
		if len(tr.ID) > 6 && "since-" == tr.ID[:6] {
			ids = append(ids, tr.ID)
		}
	}
	assert.Equal(t, []string{"since-41", "since-42"}, ids, "order")
}

func TestListManyBatches(t *testing.T) {
	store := storage.TransferStore{}

	// more than one batch of index entries
	n := 250
	for i := 0; i < n; i += 1 {
		tr := newTransfer(t, fmt.Sprintf("batch-%03d", i), 100*time.Hour+time.Duration(i)*time.Second)
		require.NoError(t, store.Put(tr), "put: %d", i)
	}

	transfers, err := store.Since(baseTime.Add(100 * time.Hour))
	require.NoError(t, err, "since")

	count := 0
	for _, tr := range transfers {
		if len(tr.ID) > 6 && "batch-" == tr.ID[:6] {
			assert.Equal(t, fmt.Sprintf("batch-%03d", count), tr.ID, "order")
			count += 1
		}
	}
	assert.Equal(t, n, count, "all listed")
}

func TestFetchCursor(t *testing.T) {
	trx, err := storage.NewDBTransaction()
	require.NoError(t, err, "transaction")

	// Created keys are 8 byte times so these sort after all of them
	for i := 0; i < 5; i += 1 {
		trx.Put(storage.Pool.Created, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, byte('a' + i)}, []byte{byte(i)})
	}
	require.NoError(t, trx.Commit(), "commit")

	cursor := storage.Pool.Created.NewFetchCursor().Seek([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})

	first, err := cursor.Fetch(3)
	require.NoError(t, err, "fetch")
	require.Len(t, first, 3, "first batch")
	assert.Equal(t, []byte{0}, first[0].Value, "first value")

	rest, err := cursor.Fetch(3)
	require.NoError(t, err, "fetch")
	require.Len(t, rest, 2, "second batch")
	assert.Equal(t, []byte{4}, rest[1].Value, "last value")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")

	trx, err = storage.NewDBTransaction()
	require.NoError(t, err, "transaction")
	for i := 0; i < 5; i += 1 {
		trx.Delete(storage.Pool.Created, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, byte('a' + i)})
	}
	require.NoError(t, trx.Commit(), "cleanup")
}
