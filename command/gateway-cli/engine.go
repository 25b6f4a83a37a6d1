// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/background"
	"github.com/bitmark-inc/gatewayd/lightnode"
	"github.com/bitmark-inc/gatewayd/metrics"
	"github.com/bitmark-inc/gatewayd/publish"
	"github.com/bitmark-inc/gatewayd/storage"
	"github.com/bitmark-inc/gatewayd/transfer"
	"github.com/bitmark-inc/gatewayd/util"
)

// everything needed to drive transfers
type engine struct {
	log       *logger.L
	store     storage.TransferStore
	resolver  *resolver
	manager   *transfer.Manager
	processes background.Processes
}

// open the database and connect the chains, the observers are given
// to the manager after the publisher and metrics
//
// the caller must call close
func newEngine(configuration *Configuration, observers ...transfer.Observer) (*engine, error) {
	log := logger.New("engine")

	store, err := openStorage(configuration, storage.ReadWrite)
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			storage.Finalise()
		}
	}()

	fetcher := newFetcher(configuration)
	r, err := newResolver(context.Background(), configuration, fetcher)
	if nil != err {
		return nil, err
	}

	network := lightnode.New(configuration.Lightnode.URL, fetcher)
	log.Infof("lightnode: %s", configuration.Lightnode.URL)

	processes := background.Processes{}
	all := make([]transfer.Observer, 0, len(observers)+2)

	if 0 != len(configuration.Publishing.Broadcast) {
		p, err := newPublisher(log, configuration.Publishing)
		if nil != err {
			return nil, err
		}
		processes = append(processes, p)
		all = append(all, p)
	}

	m, err := metrics.New(&configuration.Metrics)
	if nil != err {
		return nil, err
	}
	processes = append(processes, m)
	all = append(all, m)
	all = append(all, observers...)

	manager := transfer.NewManager(store, r, network, configuration.timing(), all...)

	ok = true
	return &engine{
		log:       log,
		store:     store,
		resolver:  r,
		manager:   manager,
		processes: processes,
	}, nil
}

// CURVE is only used when the key files exist
func newPublisher(log *logger.L, configuration publish.Configuration) (*publish.Publisher, error) {
	if !util.EnsureFileExists(configuration.PrivateKey) || !util.EnsureFileExists(configuration.PublicKey) {
		log.Warnf("no key pair: %q  publishing in plain text", configuration.PrivateKey)
		configuration.PrivateKey = ""
		configuration.PublicKey = ""
	}
	return publish.New(&configuration)
}

func (e *engine) close() {
	e.manager.Stop()
	storage.Finalise()
}

// console - prints each transition as it happens
type console struct {
	w io.Writer
}

func (c console) Transitioned(t *transfer.Transfer, tr transfer.Transition) {
	line := fmt.Sprintf("%s  %s: %s -> %s", tr.At.Format("15:04:05"), t.ID, tr.From, tr.To)
	if "" != tr.Reference {
		line += "  ref: " + tr.Reference
	}
	if "" != tr.Reason {
		line += "  reason: " + tr.Reason
	}
	fmt.Fprintln(c.w, line)
}

func (c console) Updated(t *transfer.Transfer) {}

func (c console) PollFailed(t *transfer.Transfer, err error) {
	fmt.Fprintf(c.w, "%s: %s: retrying after: %s\n", t.ID, t.State, err)
}
