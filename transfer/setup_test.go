// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer_test

import (
	"math/big"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/pack"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
)

const testingDirName = "testing"

var baseTime = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

// Test main entrypoint
func TestMain(m *testing.M) {
	if err := setup(); nil != err {
		os.Exit(1)
	}
	result := m.Run()
	teardown()
	os.Exit(result)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup() error {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	return logger.Initialise(logging)
}

func teardown() {
	logger.Finalise()
	removeFiles()
}

// fast polling and a clock fixed before expiry
func testTiming() transfer.Timing {
	return transfer.Timing{
		DepositInterval:  time.Millisecond,
		ResponseInterval: time.Millisecond,
		CallTimeout:      time.Second,
		Now: func() time.Time {
			return baseTime.Add(time.Minute)
		},
	}
}

func newTransfer(t *testing.T, id string, amount uint64) *transfer.Transfer {
	nonce := [32]byte{0x01}
	tr, err := transfer.New(transfer.Parameters{
		ID:        id,
		Direction: transaction.Mint,
		Network:   chain.Testnet,
		Asset:     currency.Bitcoin,
		Host:      "Ethereum",
		To:        "0x7DDFA2e5435027f6e13Ca8Db2f32ebd5551158Bb",
		Amount:    amount,
		Nonce:     &nonce,
		Lifetime:  time.Hour,
	}, baseTime)
	require.NoError(t, err, "new transfer")
	return tr
}

func buildTransaction(t *testing.T) *transaction.Transaction {
	typed, err := transaction.BurnInput{
		Ref:    big.NewInt(1),
		To:     "mytu3FGw8cTzGTBTQZoVcZ2CZaYpRdk2YA",
		Amount: big.NewInt(10000),
	}.Typed()
	require.NoError(t, err, "typed")

	tx, err := transaction.New(transaction.CurrentVersion, transaction.NewSelector("BTC", transaction.Burn, "Ethereum"), typed)
	require.NoError(t, err, "transaction")
	return tx
}

func responseFor(t *testing.T, tx *transaction.Transaction) *transaction.Transaction {
	out, err := pack.NewTyped(
		pack.MustStruct(pack.Field{Name: "txid", Type: pack.Bytes}),
		pack.Struct{"txid": []byte{0xca, 0xfe}},
	)
	require.NoError(t, err, "out")

	response := *tx
	response.Out = &out
	return &response
}

// records everything a machine reports
type recorder struct {
	sync.Mutex
	transitions []transfer.Transition
	updates     int
	confirmed   []uint64
	failures    []error
}

func (r *recorder) Transitioned(t *transfer.Transfer, tr transfer.Transition) {
	r.Lock()
	defer r.Unlock()
	r.transitions = append(r.transitions, tr)
}

func (r *recorder) Updated(t *transfer.Transfer) {
	r.Lock()
	defer r.Unlock()
	r.updates += 1
	if nil != t.Deposit {
		r.confirmed = append(r.confirmed, t.Deposit.Confirmations)
	}
}

func (r *recorder) PollFailed(t *transfer.Transfer, err error) {
	r.Lock()
	defer r.Unlock()
	r.failures = append(r.failures, err)
}

func (r *recorder) states() []transfer.State {
	r.Lock()
	defer r.Unlock()
	s := make([]transfer.State, len(r.transitions))
	for i, tr := range r.transitions {
		s[i] = tr.To
	}
	return s
}

// in memory Store
type memoryStore struct {
	sync.Mutex
	transfers map[string]*transfer.Transfer
	order     []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		transfers: make(map[string]*transfer.Transfer),
	}
}

func (s *memoryStore) Put(t *transfer.Transfer) error {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.transfers[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.transfers[t.ID] = t.Copy()
	return nil
}

func (s *memoryStore) Get(id string) (*transfer.Transfer, error) {
	s.Lock()
	defer s.Unlock()
	t, ok := s.transfers[id]
	if !ok {
		return nil, fault.ErrTransferNotFound
	}
	return t.Copy(), nil
}

func (s *memoryStore) List() ([]*transfer.Transfer, error) {
	s.Lock()
	defer s.Unlock()
	l := make([]*transfer.Transfer, 0, len(s.order))
	for _, id := range s.order {
		l = append(l, s.transfers[id].Copy())
	}
	return l, nil
}
