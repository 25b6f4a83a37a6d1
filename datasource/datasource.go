// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/fault"
)

const (
	// DefaultPriority - priority of an entry that does not set one
	DefaultPriority = 10

	// DefaultTimeout - limit on a single provider call
	DefaultTimeout = 30 * time.Second
)

// Deposit - one output paying to a watched address
type Deposit struct {
	TxID          string `msgpack:"txid" json:"txid"` // hex, in explorer (reversed) order
	Index         uint32 `msgpack:"index" json:"index"`
	Amount        uint64 `msgpack:"amount" json:"amount"`
	Confirmations uint64 `msgpack:"confirmations" json:"confirmations"`
}

// Key - the outpoint as "txid:index"
func (d Deposit) Key() string {
	return d.TxID + ":" + strconv.FormatUint(uint64(d.Index), 10)
}

// Provider - a single explorer API
type Provider interface {
	Name() string
	FindDeposits(ctx context.Context, address string, minConfirmations uint64) ([]Deposit, error)
}

// Entry - a provider with its priority (lower is asked first) and
// call timeout
type Entry struct {
	Provider Provider
	Priority int
	Timeout  time.Duration
}

// Source - an immutable priority ordered list of providers
type Source struct {
	log     *logger.L
	entries []Entry
}

// New - create a source, entries with equal priority keep their order
func New(entries ...Entry) (*Source, error) {
	if 0 == len(entries) {
		return nil, fault.ErrNoProviders
	}

	e := make([]Entry, len(entries))
	for i, entry := range entries {
		if nil == entry.Provider {
			return nil, fault.ErrNoProviders
		}
		if 0 == entry.Priority {
			entry.Priority = DefaultPriority
		}
		if entry.Timeout <= 0 {
			entry.Timeout = DefaultTimeout
		}
		e[i] = entry
	}
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Priority < e[j].Priority
	})

	return &Source{
		log:     logger.New("datasource"),
		entries: e,
	}, nil
}

// Providers - names in the order they are asked
func (s *Source) Providers() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Provider.Name()
	}
	return names
}

// FindDeposits - ask each provider in turn
//
// a provider that fails or finds nothing passes the query on to the
// next one; the result is empty with no error if any provider
// answered, and fault.ErrAllProvidersExhausted if none did
func (s *Source) FindDeposits(ctx context.Context, address string, minConfirmations uint64) ([]Deposit, error) {
	failures := 0

	for _, e := range s.entries {
		if err := ctx.Err(); nil != err {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, e.Timeout)
		deposits, err := e.Provider.FindDeposits(callCtx, address, minConfirmations)
		cancel()

		if nil != err {
			failures += 1
			s.log.Warnf("provider: %s  address: %s  error: %s", e.Provider.Name(), address, err)
			continue
		}
		if 0 == len(deposits) {
			s.log.Tracef("provider: %s  address: %s  no deposits", e.Provider.Name(), address)
			continue
		}

		s.log.Debugf("provider: %s  address: %s  deposits: %d", e.Provider.Name(), address, len(deposits))
		return deposits, nil
	}

	if failures == len(s.entries) {
		s.log.Warnf("address: %s  all %d providers failed", address, failures)
		return nil, fault.ErrAllProvidersExhausted
	}
	return nil, nil
}
