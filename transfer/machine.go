// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transaction"
)

// polling defaults
const (
	DefaultDepositInterval  = 10 * time.Second
	DefaultResponseInterval = 5 * time.Second
	DefaultCallTimeout      = 30 * time.Second
)

const inboxSize = 16

// reason recorded when a transfer is cancelled
const cancelledReason = "cancelled"

// Timing - polling intervals, call limit and clock of a machine
type Timing struct {
	DepositInterval  time.Duration
	ResponseInterval time.Duration
	CallTimeout      time.Duration
	Now              func() time.Time
}

func (t Timing) withDefaults() Timing {
	if t.DepositInterval <= 0 {
		t.DepositInterval = DefaultDepositInterval
	}
	if t.ResponseInterval <= 0 {
		t.ResponseInterval = DefaultResponseInterval
	}
	if t.CallTimeout <= 0 {
		t.CallTimeout = DefaultCallTimeout
	}
	if nil == t.Now {
		t.Now = time.Now
	}
	return t
}

// Machine - drives a single transfer to a terminal state
//
// all work happens on the goroutine calling Run, other goroutines
// may only Send messages and take a Snapshot
type Machine struct {
	sync.RWMutex // protects transfer

	log      *logger.L
	transfer *Transfer
	chains   Chains
	network  Network
	observer Observer
	timing   Timing

	inbox chan Message
	done  chan struct{}

	cancelled *Cancel
	tx        *transaction.Transaction // built for submission
	response  *transaction.Transaction // network result
}

type outcome struct {
	event     Event
	reference string
	reason    string
}

// NewMachine - create a machine for a transfer, observer may be nil
func NewMachine(t *Transfer, chains Chains, network Network, observer Observer, timing Timing) (*Machine, error) {
	if nil == t || !t.State.IsValid() {
		return nil, fault.ErrInvalidTransfer
	}
	if nil == chains.Source || nil == chains.Builder || nil == chains.Destination || nil == network {
		return nil, fault.ErrMissingConfiguration
	}
	return &Machine{
		log:      logger.New("transfer"),
		transfer: t,
		chains:   chains,
		network:  network,
		observer: observer,
		timing:   timing.withDefaults(),
		inbox:    make(chan Message, inboxSize),
		done:     make(chan struct{}),
	}, nil
}

// ID - the transfer id
func (m *Machine) ID() string {
	return m.transfer.ID
}

// Send - deliver a message, fails once Run has returned
func (m *Machine) Send(msg Message) error {
	select {
	case <-m.done:
		return fault.ErrTerminalTransfer
	default:
	}
	select {
	case m.inbox <- msg:
		return nil
	case <-m.done:
		return fault.ErrTerminalTransfer
	}
}

// Done - closed when Run returns
func (m *Machine) Done() <-chan struct{} {
	return m.done
}

// Snapshot - a copy of the transfer as it is now
func (m *Machine) Snapshot() *Transfer {
	m.RLock()
	defer m.RUnlock()
	return m.transfer.Copy()
}

// Run - step the transfer until it is terminal or ctx is done
//
// returns nil for a terminal transfer and the context error when
// stopped early, in which case the transfer can be resumed later
func (m *Machine) Run(ctx context.Context) error {
	defer close(m.done)

	t := m.transfer
	m.log.Infof("%s: run from: %s", t.ID, t.State)

	for {
		m.drain()

		if t.IsTerminal() {
			m.log.Infof("%s: finished: %s  reason: %q", t.ID, t.State, t.Reason)
			return nil
		}

		if nil != m.cancelled {
			m.log.Infof("%s: cancel requested: %q", t.ID, m.cancelled.Reason)
			if err := m.apply(nil, outcome{event: Cancelled, reason: cancelledReason}); nil != err {
				return err
			}
			continue
		}

		if !m.timing.Now().Before(t.Expiry) {
			if err := m.apply(nil, outcome{event: Timeout, reason: fault.ErrTransferExpired.Error()}); nil != err {
				return err
			}
			continue
		}

		if err := ctx.Err(); nil != err {
			m.log.Infof("%s: stopped in: %s", t.ID, t.State)
			return err
		}

		wait, err := m.step(ctx)
		if nil != err {
			if nil != ctx.Err() {
				continue
			}
			wait, err = m.failed(err)
			if nil != err {
				return err
			}
		}

		if wait > 0 && !t.IsTerminal() && nil == m.cancelled {
			m.sleep(ctx, wait)
		}
	}
}

// one step of the current state, returns the delay before the next
func (m *Machine) step(ctx context.Context) (time.Duration, error) {
	switch m.transfer.State {
	case SourceInitiated:
		return m.findDeposit(ctx)
	case SourceSettling:
		return m.awaitConfirmations(ctx)
	case SourceConfirmed:
		return m.submit(ctx)
	case SubmittedToNetwork:
		return m.awaitResponse(ctx)
	case DestinationInitiated:
		return m.submitDestination(ctx)
	case DestinationSettling:
		return m.awaitDestination(ctx)
	default:
		return 0, fault.ErrInvalidState
	}
}

func (m *Machine) findDeposit(ctx context.Context) (time.Duration, error) {
	t := m.transfer

	callCtx, cancel := context.WithTimeout(ctx, m.timing.CallTimeout)
	deposits, err := m.chains.Source.Deposits(callCtx, t)
	cancel()
	if nil != err {
		return 0, err
	}

	deposit, ok := selectDeposit(deposits, t.Amount)
	if !ok {
		m.log.Tracef("%s: no deposit of at least: %d from: %d seen", t.ID, t.Amount, len(deposits))
		return m.timing.DepositInterval, nil
	}

	required, err := m.chains.Source.RequiredConfirmations(t.Network)
	if nil != err {
		return 0, err
	}

	m.log.Infof("%s: deposit: %s  amount: %d  confirmations: %d/%d", t.ID, deposit.Key(), deposit.Amount, deposit.Confirmations, required)

	outcomes := []outcome{{event: DepositSeen, reference: deposit.Key()}}
	confirmed := deposit.Confirmations >= required
	if confirmed {
		outcomes = append(outcomes, outcome{event: DepositConfirmed, reference: deposit.Key()})
	}

	err = m.apply(func() {
		t.Deposit = &deposit
	}, outcomes...)
	if nil != err || confirmed {
		return 0, err
	}
	return m.timing.DepositInterval, nil
}

func (m *Machine) awaitConfirmations(ctx context.Context) (time.Duration, error) {
	t := m.transfer
	if nil == t.Deposit {
		return 0, fault.ErrInvalidTransfer
	}
	key := t.Deposit.Key()

	callCtx, cancel := context.WithTimeout(ctx, m.timing.CallTimeout)
	deposits, err := m.chains.Source.Deposits(callCtx, t)
	cancel()
	if nil != err {
		return 0, err
	}

	required, err := m.chains.Source.RequiredConfirmations(t.Network)
	if nil != err {
		return 0, err
	}

	for _, d := range deposits {
		if key != d.Key() {
			continue
		}
		deposit := d
		m.log.Debugf("%s: deposit: %s  confirmations: %d/%d", t.ID, key, d.Confirmations, required)

		if deposit.Confirmations < required {
			m.Lock()
			changed := t.Deposit.Confirmations != deposit.Confirmations
			t.Deposit.Confirmations = deposit.Confirmations
			snapshot := t.Copy()
			m.Unlock()

			if changed && nil != m.observer {
				m.observer.Updated(snapshot)
			}
			return m.timing.DepositInterval, nil
		}
		return 0, m.apply(func() {
			t.Deposit.Confirmations = deposit.Confirmations
		}, outcome{event: DepositConfirmed, reference: key})
	}

	// reorganisation or a lagging provider
	m.log.Warnf("%s: selected deposit: %s  not visible", t.ID, key)
	return m.timing.DepositInterval, nil
}

func (m *Machine) submit(ctx context.Context) (time.Duration, error) {
	t := m.transfer
	if nil == t.Deposit {
		return 0, fault.ErrInvalidTransfer
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timing.CallTimeout)
	defer cancel()

	tx := m.tx
	if nil == tx {
		built, err := m.chains.Builder.Build(callCtx, t, *t.Deposit)
		if nil != err {
			return 0, err
		}
		if err := built.Verify(); nil != err {
			return 0, err
		}
		tx = built
		m.tx = built
	}

	if err := m.network.SubmitTransaction(callCtx, tx); nil != err {
		return 0, err
	}

	m.log.Infof("%s: submitted: %s  selector: %s", t.ID, tx.Hash, tx.Selector)
	err := m.apply(nil, outcome{event: NetworkSubmitted, reference: tx.Hash.String()})
	if nil != err {
		return 0, err
	}
	return m.timing.ResponseInterval, nil
}

// query the network for the submitted transaction
func (m *Machine) query(ctx context.Context) (*transaction.Transaction, transaction.Status, error) {
	ref, ok := m.transfer.Reference(SubmittedToNetwork)
	if !ok {
		return nil, transaction.Unknown, fault.ErrInvalidTransfer
	}
	var hash transaction.Hash
	if err := hash.UnmarshalText([]byte(ref)); nil != err {
		return nil, transaction.Unknown, err
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timing.CallTimeout)
	defer cancel()

	response, status, err := m.network.QueryTransaction(callCtx, hash)
	if nil != err {
		return nil, status, err
	}
	if transaction.Done == status {
		if nil == response || nil == response.Out {
			return nil, status, fault.ErrMissingResponse
		}
		if hash != response.Hash {
			return nil, status, fault.ErrHashMismatch
		}
	}
	return response, status, nil
}

func (m *Machine) awaitResponse(ctx context.Context) (time.Duration, error) {
	t := m.transfer

	response, status, err := m.query(ctx)
	if nil != err {
		return 0, err
	}

	switch status {
	case transaction.Done:
		m.log.Infof("%s: network response received", t.ID)
		return 0, m.apply(func() {
			m.response = response
		}, outcome{event: ResponseReceived})

	case transaction.Reverted:
		reason := fault.ErrTransactionReverted.Error()
		if nil != response {
			if r, ok := response.OutField("revert"); ok {
				reason = fmt.Sprintf("%s: %v", reason, r)
			}
		}
		m.log.Warnf("%s: %s", t.ID, reason)
		return 0, m.apply(nil, outcome{event: NetworkRejected, reason: reason})

	default:
		m.log.Tracef("%s: network status: %s", t.ID, status)
		return m.timing.ResponseInterval, nil
	}
}

func (m *Machine) submitDestination(ctx context.Context) (time.Duration, error) {
	t := m.transfer

	// after a restart the response is fetched again
	if nil == m.response {
		response, status, err := m.query(ctx)
		if nil != err {
			return 0, err
		}
		if transaction.Done != status {
			return m.timing.ResponseInterval, nil
		}
		m.response = response
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timing.CallTimeout)
	ref, err := m.chains.Destination.Submit(callCtx, t, m.response)
	cancel()
	if nil != err {
		return 0, err
	}

	m.log.Infof("%s: destination: %s", t.ID, ref)
	return 0, m.apply(nil, outcome{event: DestinationSubmitted, reference: ref})
}

func (m *Machine) awaitDestination(ctx context.Context) (time.Duration, error) {
	t := m.transfer

	ref, ok := t.Reference(DestinationSettling)
	if !ok {
		return 0, fault.ErrInvalidTransfer
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timing.CallTimeout)
	settled, err := m.chains.Destination.Settled(callCtx, t, ref)
	cancel()
	if nil != err {
		return 0, err
	}
	if !settled {
		return m.timing.DepositInterval, nil
	}
	return 0, m.apply(nil, outcome{event: DestinationSettled, reference: ref})
}

// decide what a step error means for the transfer
func (m *Machine) failed(err error) (time.Duration, error) {
	t := m.transfer

	switch {
	case fault.IsErrTransient(err) || errors.Is(err, context.DeadlineExceeded):
		if errors.Is(err, fault.ErrAllProvidersExhausted) {
			m.log.Warnf("%s: state: %s  every provider failed", t.ID, t.State)
		} else {
			m.log.Warnf("%s: state: %s  retry after: %s", t.ID, t.State, err)
		}
		if nil != m.observer {
			m.observer.PollFailed(m.Snapshot(), err)
		}
		if SubmittedToNetwork == t.State {
			return m.timing.ResponseInterval, nil
		}
		return m.timing.DepositInterval, nil

	case fault.IsErrRejected(err) && (SourceConfirmed == t.State || SubmittedToNetwork == t.State):
		m.log.Warnf("%s: rejected: %s", t.ID, err)
		return 0, m.apply(nil, outcome{event: NetworkRejected, reason: err.Error()})

	default:
		m.log.Errorf("%s: state: %s  failed: %s", t.ID, t.State, err)
		return 0, m.apply(nil, outcome{event: Failed, reason: err.Error()})
	}
}

// apply the outcomes of a step unless a cancel arrived meanwhile, in
// which case the step's result is dropped
func (m *Machine) apply(update func(), outcomes ...outcome) error {
	cancelling := 1 == len(outcomes) && (Cancelled == outcomes[0].event || Timeout == outcomes[0].event)
	if !cancelling {
		m.drain()
		if nil != m.cancelled {
			m.log.Infof("%s: result discarded after cancel", m.transfer.ID)
			return nil
		}
	}

	now := m.timing.Now()
	applied := make([]Transition, 0, len(outcomes))

	m.Lock()
	if nil != update {
		update()
	}
	for _, o := range outcomes {
		tr, err := m.transfer.Apply(o.event, o.reference, o.reason, now)
		if nil != err {
			m.Unlock()
			m.log.Criticalf("%s: event: %s  in: %s  error: %s", m.transfer.ID, o.event, m.transfer.State, err)
			return err
		}
		applied = append(applied, tr)
	}
	snapshot := m.transfer.Copy()
	m.Unlock()

	for _, tr := range applied {
		m.log.Infof("%s: %s -> %s  event: %s", snapshot.ID, tr.From, tr.To, tr.Event)
		if nil != m.observer {
			m.observer.Transitioned(snapshot, tr)
		}
	}
	return nil
}

// process all queued messages without waiting
func (m *Machine) drain() {
	for {
		select {
		case msg := <-m.inbox:
			m.handle(msg)
		default:
			return
		}
	}
}

func (m *Machine) handle(msg Message) {
	t := m.transfer

	switch msg := msg.(type) {
	case Cancel:
		if nil == m.cancelled {
			m.cancelled = &msg
		}

	case SourceSubmitted:
		if "" != t.SourceHash || "" == msg.Hash {
			m.log.Warnf("%s: ignored source hash: %q", t.ID, msg.Hash)
			return
		}
		m.Lock()
		t.SourceHash = msg.Hash
		snapshot := t.Copy()
		m.Unlock()

		m.log.Infof("%s: source hash: %s", t.ID, msg.Hash)
		if nil != m.observer {
			m.observer.Updated(snapshot)
		}

	default:
		m.log.Errorf("%s: unexpected message: %T", t.ID, msg)
	}
}

// wait for the delay, a message or shutdown
func (m *Machine) sleep(ctx context.Context, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case msg := <-m.inbox:
		m.handle(msg)
	case <-timer.C:
	}
}

// the first deposit covering the amount, deposits are never combined
func selectDeposit(deposits []datasource.Deposit, amount uint64) (datasource.Deposit, bool) {
	for _, d := range deposits {
		if d.Amount >= amount {
			return d, true
		}
	}
	return datasource.Deposit{}, false
}
