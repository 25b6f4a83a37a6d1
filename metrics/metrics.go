// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transfer"
	"github.com/bitmark-inc/gatewayd/util"
)

const (
	namespace = "gatewayd"
	subsystem = "transfer"

	// path served by the listener
	Path = "/metrics"

	shutdownTimeout = 5 * time.Second
)

// Configuration - a block of the Lua configuration file
//
// an empty listen address disables the HTTP listener, the counters
// are still kept
type Configuration struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

// Metrics - a transfer.Observer counting what the machines do
type Metrics struct {
	sync.Mutex

	log      *logger.L
	registry *prometheus.Registry
	listen   string

	transitions  *prometheus.CounterVec
	pollFailures *prometheus.CounterVec
	exhausted    *prometheus.CounterVec
	active       *prometheus.GaugeVec

	// last known state of every non-terminal transfer seen
	states map[string]transfer.State
}

// New - create the collectors in a private registry
func New(configuration *Configuration) (*Metrics, error) {
	log := logger.New("metrics")

	listen := ""
	if nil != configuration && "" != configuration.Listen {
		c, err := util.CanonicalIPandPort(configuration.Listen)
		if nil != err {
			log.Errorf("listen: %q  error: %s", configuration.Listen, err)
			return nil, err
		}
		listen = c
	}

	m := &Metrics{
		log:      log,
		registry: prometheus.NewRegistry(),
		listen:   listen,
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transitions_total",
				Help:      "Total number of state transitions",
			},
			[]string{"asset", "direction", "from", "to", "event"},
		),
		pollFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "poll_failures_total",
				Help:      "Total number of failed polls that will be retried",
			},
			[]string{"asset", "direction", "state"},
		),
		exhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "providers_exhausted_total",
				Help:      "Total number of polls where every data provider failed",
			},
			[]string{"asset"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active",
				Help:      "Non-terminal transfers by current state",
			},
			[]string{"state"},
		),
		states: make(map[string]transfer.State),
	}

	m.register(collectors.NewGoCollector(), "go_collector")
	m.register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process_collector")
	m.register(m.transitions, "transitions_total")
	m.register(m.pollFailures, "poll_failures_total")
	m.register(m.exhausted, "providers_exhausted_total")
	m.register(m.active, "active")

	return m, nil
}

// an already registered collector is not an error
func (m *Metrics) register(collector prometheus.Collector, name string) {
	if err := m.registry.Register(collector); nil != err {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			m.log.Debugf("%s already registered", name)
		} else {
			m.log.Errorf("register: %s  error: %s", name, err)
		}
	}
}

// Registry - for tests and for serving elsewhere
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler - the exposition endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Run - background process serving the registry until shutdown
func (m *Metrics) Run(args interface{}, shutdown <-chan struct{}) {
	log := m.log

	if "" == m.listen {
		log.Info("no listener")
		<-shutdown
		return
	}

	mux := http.NewServeMux()
	mux.Handle(Path, m.Handler())
	server := &http.Server{
		Addr:              m.listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infof("listen: %s", m.listen)
	go func() {
		err := server.ListenAndServe()
		if nil != err && http.ErrServerClosed != err {
			log.Criticalf("listen: %s  error: %s", m.listen, err)
		}
	}()

	<-shutdown
	log.Info("shutting down…")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); nil != err {
		log.Errorf("shutdown error: %s", err)
	}
	log.Info("stopped")
}

// Transitioned - transfer.Observer
func (m *Metrics) Transitioned(t *transfer.Transfer, tr transfer.Transition) {
	m.transitions.WithLabelValues(
		t.Asset.String(),
		t.Direction.String(),
		tr.From.String(),
		tr.To.String(),
		tr.Event.String(),
	).Inc()

	m.Lock()
	defer m.Unlock()

	if _, ok := m.states[t.ID]; !ok {
		m.enter(t.ID, tr.From)
	}
	m.leave(t.ID)
	m.enter(t.ID, tr.To)
}

// Updated - transfer.Observer
func (m *Metrics) Updated(t *transfer.Transfer) {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.states[t.ID]; !ok {
		m.enter(t.ID, t.State)
	}
}

// PollFailed - transfer.Observer
func (m *Metrics) PollFailed(t *transfer.Transfer, err error) {
	m.pollFailures.WithLabelValues(
		t.Asset.String(),
		t.Direction.String(),
		t.State.String(),
	).Inc()

	if errors.Is(err, fault.ErrAllProvidersExhausted) {
		m.exhausted.WithLabelValues(t.Asset.String()).Inc()
	}
}

// lock must be held
func (m *Metrics) enter(id string, state transfer.State) {
	if state.IsTerminal() {
		return
	}
	m.states[id] = state
	m.active.WithLabelValues(state.String()).Inc()
}

// lock must be held
func (m *Metrics) leave(id string) {
	state, ok := m.states[id]
	if !ok {
		return
	}
	delete(m.states, id)
	m.active.WithLabelValues(state.String()).Dec()
}
