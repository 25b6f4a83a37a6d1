// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transaction"
)

// DefaultLifetime - time allowed from creation to completion
const DefaultLifetime = 24 * time.Hour

// Transition - one entry of the history
type Transition struct {
	From      State     `msgpack:"from" json:"from"`
	To        State     `msgpack:"to" json:"to"`
	Event     Event     `msgpack:"event" json:"event"`
	At        time.Time `msgpack:"at" json:"at"`
	Reference string    `msgpack:"reference,omitempty" json:"reference,omitempty"`
	Reason    string    `msgpack:"reason,omitempty" json:"reason,omitempty"`
}

// Transfer - the persisted record of a gateway session
//
// only the state machine changes a transfer and once terminal it does
// not change again
type Transfer struct {
	ID        string                `msgpack:"id" json:"id"`
	Direction transaction.Direction `msgpack:"direction" json:"direction"`
	Network   chain.Network         `msgpack:"network" json:"network"`
	Asset     currency.Currency     `msgpack:"asset" json:"asset"`
	Host      string                `msgpack:"host" json:"host"`
	To        string                `msgpack:"to" json:"to"`
	Token     string                `msgpack:"token,omitempty" json:"token,omitempty"`
	Amount    uint64                `msgpack:"amount" json:"amount"`
	User      string                `msgpack:"user,omitempty" json:"user,omitempty"`
	Nonce     [32]byte              `msgpack:"nonce" json:"nonce"`
	Payload   []byte                `msgpack:"payload,omitempty" json:"payload,omitempty"`
	Created   time.Time             `msgpack:"created" json:"created"`
	Expiry    time.Time             `msgpack:"expiry" json:"expiry"`

	State        State             `msgpack:"state" json:"state"`
	Transactions map[string]string `msgpack:"transactions" json:"transactions"`
	History      []Transition      `msgpack:"history" json:"history"`
	Reason       string            `msgpack:"reason,omitempty" json:"reason,omitempty"`

	// host chain burn transaction, set by SourceSubmitted
	SourceHash string `msgpack:"sourceHash,omitempty" json:"sourceHash,omitempty"`

	// the selected deposit, kept once chosen
	Deposit *datasource.Deposit `msgpack:"deposit,omitempty" json:"deposit,omitempty"`

	// cache only, always re-derived before use
	GatewayAddress string `msgpack:"gatewayAddress,omitempty" json:"gatewayAddress,omitempty"`
}

// Parameters - the caller supplied part of a transfer
type Parameters struct {
	ID        string
	Direction transaction.Direction
	Network   chain.Network
	Asset     currency.Currency
	Host      string
	To        string
	Token     string
	Amount    uint64
	User      string
	Nonce     *[32]byte // random if nil
	Payload   []byte
	Lifetime  time.Duration // DefaultLifetime if zero
}

// New - create a transfer in its initial state
func New(p Parameters, now time.Time) (*Transfer, error) {
	if !chain.Valid(p.Network.String()) {
		return nil, fault.ErrInvalidNetwork
	}
	if !p.Asset.IsValid() {
		return nil, fault.ErrInvalidAsset
	}
	if transaction.Mint != p.Direction && transaction.Burn != p.Direction {
		return nil, fault.ErrInvalidDirection
	}
	if "" == p.Host || "" == p.To {
		return nil, fault.ErrMissingDestination
	}
	if 0 == p.Amount {
		return nil, fault.ErrInvalidAmount
	}

	id := p.ID
	if "" == id {
		id = uuid.New().String()
	}

	var nonce [32]byte
	if nil != p.Nonce {
		nonce = *p.Nonce
	} else if _, err := rand.Read(nonce[:]); nil != err {
		return nil, err
	}

	lifetime := p.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	return &Transfer{
		ID:           id,
		Direction:    p.Direction,
		Network:      p.Network,
		Asset:        p.Asset,
		Host:         p.Host,
		To:           p.To,
		Token:        p.Token,
		Amount:       p.Amount,
		User:         p.User,
		Nonce:        nonce,
		Payload:      p.Payload,
		Created:      now.UTC(),
		Expiry:       now.Add(lifetime).UTC(),
		State:        SourceInitiated,
		Transactions: make(map[string]string),
	}, nil
}

// Selector - the network operation that completes this transfer
func (t *Transfer) Selector() transaction.Selector {
	return transaction.NewSelector(t.Asset.String(), t.Direction, t.Host)
}

// IsTerminal - the transfer has finished
func (t *Transfer) IsTerminal() bool {
	return t.State.IsTerminal()
}

// Record - add the transaction reference for a stage
//
// a reference once recorded is never replaced
func (t *Transfer) Record(state State, reference string) error {
	if nil == t.Transactions {
		t.Transactions = make(map[string]string)
	}
	key := state.String()
	if _, ok := t.Transactions[key]; ok {
		return fault.ErrStageAlreadyRecorded
	}
	t.Transactions[key] = reference
	return nil
}

// Reference - the transaction reference recorded for a stage
func (t *Transfer) Reference(state State) (string, bool) {
	ref, ok := t.Transactions[state.String()]
	return ref, ok
}

// Apply - move to the state reached by event, appending to the history
func (t *Transfer) Apply(event Event, reference string, reason string, now time.Time) (Transition, error) {
	next, err := Next(t.State, event)
	if nil != err {
		return Transition{}, err
	}
	if "" != reference {
		if err := t.Record(next, reference); nil != err {
			return Transition{}, err
		}
	}

	tr := Transition{
		From:      t.State,
		To:        next,
		Event:     event,
		At:        now.UTC(),
		Reference: reference,
		Reason:    reason,
	}
	t.History = append(t.History, tr)
	t.State = next
	if "" != reason {
		t.Reason = reason
	}
	return tr, nil
}

// Copy - a deep copy safe to hand to another goroutine
func (t *Transfer) Copy() *Transfer {
	c := *t
	if nil != t.Payload {
		c.Payload = append([]byte{}, t.Payload...)
	}
	c.Transactions = make(map[string]string, len(t.Transactions))
	for k, v := range t.Transactions {
		c.Transactions[k] = v
	}
	c.History = append([]Transition(nil), t.History...)
	if nil != t.Deposit {
		d := *t.Deposit
		c.Deposit = &d
	}
	return &c
}
