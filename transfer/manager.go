// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Store - persistent transfer records
type Store interface {
	Put(t *Transfer) error
	Get(id string) (*Transfer, error)
	List() ([]*Transfer, error)
}

// Manager - runs a machine for every active transfer
//
// all transitions are persisted before observers see them
type Manager struct {
	sync.Mutex

	log       *logger.L
	store     Store
	resolver  Resolver
	network   Network
	timing    Timing
	observers []Observer

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	machines map[string]*Machine
	stopped  bool
}

// NewManager - create a manager, transfers can be started at once and
// stored transfers resume when Run is called
func NewManager(store Store, resolver Resolver, network Network, timing Timing, observers ...Observer) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		log:       logger.New("manager"),
		store:     store,
		resolver:  resolver,
		network:   network,
		timing:    timing.withDefaults(),
		observers: observers,
		ctx:       ctx,
		cancel:    cancel,
		machines:  make(map[string]*Machine),
	}
}

// Run - background process: resume stored transfers and wait for shutdown
func (mgr *Manager) Run(args interface{}, shutdown <-chan struct{}) {
	log := mgr.log
	log.Info("starting…")

	if n, err := mgr.Resume(); nil != err {
		log.Errorf("resume error: %s", err)
	} else {
		log.Infof("resumed: %d transfers", n)
	}

	<-shutdown
	log.Info("shutting down…")
	mgr.Stop()
	log.Info("stopped")
}

// Stop - halt every machine, their transfers remain resumable
func (mgr *Manager) Stop() {
	mgr.Lock()
	mgr.stopped = true
	mgr.Unlock()

	mgr.cancel()
	mgr.wg.Wait()
}

// Resume - start machines for all stored non-terminal transfers
func (mgr *Manager) Resume() (int, error) {
	transfers, err := mgr.store.List()
	if nil != err {
		return 0, err
	}

	n := 0
	for _, t := range transfers {
		if t.IsTerminal() || mgr.isRunning(t.ID) {
			continue
		}
		if err := mgr.launch(t); nil != err {
			mgr.log.Errorf("resume: %s  error: %s", t.ID, err)
			mgr.abandon(t, err)
			continue
		}
		n += 1
	}
	return n, nil
}

// Start - store a new transfer and begin driving it
func (mgr *Manager) Start(t *Transfer) error {
	if nil == t || "" == t.ID {
		return fault.ErrInvalidTransfer
	}
	if SourceInitiated != t.State {
		return fault.ErrInvalidState
	}
	if _, err := mgr.store.Get(t.ID); nil == err {
		return fault.ErrTransferExists
	} else if !fault.IsErrNotFound(err) {
		return err
	}

	// resolve before storing so a transfer nothing can serve is rejected
	if _, err := mgr.resolver.Resolve(t); nil != err {
		return err
	}
	if err := mgr.store.Put(t); nil != err {
		return err
	}
	return mgr.launch(t)
}

// Send - deliver a message to a running transfer
func (mgr *Manager) Send(id string, msg Message) error {
	mgr.Lock()
	m, ok := mgr.machines[id]
	mgr.Unlock()

	if !ok {
		return fault.ErrTransferNotFound
	}
	return m.Send(msg)
}

// Cancel - cancel a transfer whether or not it is running
func (mgr *Manager) Cancel(id string, reason string) error {
	err := mgr.Send(id, Cancel{Reason: reason})
	if fault.ErrTransferNotFound != err {
		return err
	}

	// not running here, so change the stored record
	t, err := mgr.store.Get(id)
	if nil != err {
		return err
	}
	tr, err := t.Apply(Cancelled, "", cancelledReason, mgr.timing.Now())
	if nil != err {
		return err
	}
	mgr.Transitioned(t, tr)
	return nil
}

// Status - the current transfer, from its machine if running
func (mgr *Manager) Status(id string) (*Transfer, error) {
	mgr.Lock()
	m, ok := mgr.machines[id]
	mgr.Unlock()

	if ok {
		return m.Snapshot(), nil
	}
	return mgr.store.Get(id)
}

// Wait - closed when the transfer's machine stops, nil if not running
func (mgr *Manager) Wait(id string) <-chan struct{} {
	mgr.Lock()
	defer mgr.Unlock()

	if m, ok := mgr.machines[id]; ok {
		return m.Done()
	}
	return nil
}

// Running - ids of all running transfers
func (mgr *Manager) Running() []string {
	mgr.Lock()
	defer mgr.Unlock()

	ids := make([]string, 0, len(mgr.machines))
	for id := range mgr.machines {
		ids = append(ids, id)
	}
	return ids
}

func (mgr *Manager) isRunning(id string) bool {
	mgr.Lock()
	defer mgr.Unlock()
	_, ok := mgr.machines[id]
	return ok
}

func (mgr *Manager) launch(t *Transfer) error {
	chains, err := mgr.resolver.Resolve(t)
	if nil != err {
		return err
	}
	m, err := NewMachine(t, chains, mgr.network, mgr, mgr.timing)
	if nil != err {
		return err
	}

	mgr.Lock()
	defer mgr.Unlock()

	if mgr.stopped {
		return fault.ErrNotInitialised
	}
	if _, ok := mgr.machines[t.ID]; ok {
		return fault.ErrTransferExists
	}
	mgr.machines[t.ID] = m

	mgr.wg.Add(1)
	go func() {
		defer mgr.wg.Done()

		err := m.Run(mgr.ctx)
		if nil != err && context.Canceled != err {
			mgr.log.Errorf("%s: stopped with error: %s", m.ID(), err)
		}

		mgr.Lock()
		delete(mgr.machines, m.ID())
		mgr.Unlock()
	}()
	return nil
}

// a stored transfer that can no longer be driven becomes errored
func (mgr *Manager) abandon(t *Transfer, cause error) {
	tr, err := t.Apply(Failed, "", cause.Error(), mgr.timing.Now())
	if nil != err {
		return
	}
	mgr.Transitioned(t, tr)
}

// Transitioned - persist then forward to the observers
func (mgr *Manager) Transitioned(t *Transfer, tr Transition) {
	if err := mgr.store.Put(t); nil != err {
		mgr.log.Criticalf("%s: persist: %s -> %s  error: %s", t.ID, tr.From, tr.To, err)
	}
	for _, o := range mgr.observers {
		o.Transitioned(t, tr)
	}
}

// Updated - persist then forward to the observers
func (mgr *Manager) Updated(t *Transfer) {
	if err := mgr.store.Put(t); nil != err {
		mgr.log.Criticalf("%s: persist error: %s", t.ID, err)
	}
	for _, o := range mgr.observers {
		o.Updated(t)
	}
}

// PollFailed - forward to the observers
func (mgr *Manager) PollFailed(t *Transfer, err error) {
	for _, o := range mgr.observers {
		o.PollFailed(t, err)
	}
}

// WaitTerminal - block until a transfer's machine stops or the timeout
// passes, then report its status
func (mgr *Manager) WaitTerminal(id string, timeout time.Duration) (*Transfer, error) {
	if done := mgr.Wait(id); nil != done {
		select {
		case <-done:
		case <-time.After(timeout):
		}
	}
	return mgr.Status(id)
}
