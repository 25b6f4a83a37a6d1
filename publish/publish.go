// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/transfer"
	"github.com/bitmark-inc/gatewayd/zmqutil"
)

// events waiting to be sent, newer events are dropped when full
const queueSize = 1000

// topics, the first frame of every message
const (
	TopicTransition = "transition"
	TopicUpdate     = "update"
	TopicPollFailed = "pollfailed"
)

// Configuration - a block of the Lua configuration file
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Event - the JSON second frame
type Event struct {
	ID             string            `json:"id"`
	Direction      string            `json:"direction"`
	Network        string            `json:"network"`
	Asset          string            `json:"asset"`
	Host           string            `json:"host"`
	State          transfer.State    `json:"state"`
	From           *transfer.State   `json:"from,omitempty"`
	Event          *transfer.Event   `json:"event,omitempty"`
	Reference      string            `json:"reference,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	Error          string            `json:"error,omitempty"`
	GatewayAddress string            `json:"gatewayAddress,omitempty"`
	Transactions   map[string]string `json:"transactions,omitempty"`
	At             time.Time         `json:"at"`
}

type message struct {
	topic string
	data  []byte
}

// anything that can send a multipart message, normally a PUB socket
type sender interface {
	SendMessage(parts ...interface{}) (int, error)
	Close() error
}

// Publisher - a transfer.Observer that broadcasts every change
type Publisher struct {
	log    *logger.L
	socket sender
	queue  chan message
	now    func() time.Time
}

// New - bind the PUB socket, keys are optional
func New(configuration *Configuration) (*Publisher, error) {
	log := logger.New("publish")

	var privateKey, publicKey []byte
	if "" != configuration.PrivateKey {
		var err error
		privateKey, err = zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
		if nil != err {
			log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
			return nil, err
		}
		publicKey, err = zmqutil.ReadPublicKeyFile(configuration.PublicKey)
		if nil != err {
			log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
			return nil, err
		}
	}

	socket, err := zmqutil.NewPublisher(log, privateKey, publicKey, configuration.Broadcast)
	if nil != err {
		return nil, err
	}
	return newPublisher(log, socket), nil
}

func newPublisher(log *logger.L, socket sender) *Publisher {
	return &Publisher{
		log:    log,
		socket: socket,
		queue:  make(chan message, queueSize),
		now:    time.Now,
	}
}

// Run - background process sending queued events
func (p *Publisher) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m := <-p.queue:
			if _, err := p.socket.SendMessage(m.topic, m.data); nil != err {
				log.Errorf("send: %s  error: %s", m.topic, err)
			}
		}
	}

	p.socket.Close()
	log.Info("stopped")
}

// Transitioned - transfer.Observer
func (p *Publisher) Transitioned(t *transfer.Transfer, tr transfer.Transition) {
	e := p.event(t)
	e.From = &tr.From
	e.Event = &tr.Event
	e.Reference = tr.Reference
	e.Reason = tr.Reason
	e.At = tr.At
	p.enqueue(TopicTransition, e)
}

// Updated - transfer.Observer
func (p *Publisher) Updated(t *transfer.Transfer) {
	p.enqueue(TopicUpdate, p.event(t))
}

// PollFailed - transfer.Observer
func (p *Publisher) PollFailed(t *transfer.Transfer, err error) {
	e := p.event(t)
	e.Error = err.Error()
	p.enqueue(TopicPollFailed, e)
}

func (p *Publisher) event(t *transfer.Transfer) Event {
	return Event{
		ID:             t.ID,
		Direction:      t.Direction.String(),
		Network:        t.Network.String(),
		Asset:          t.Asset.String(),
		Host:           t.Host,
		State:          t.State,
		Reason:         t.Reason,
		GatewayAddress: t.GatewayAddress,
		Transactions:   t.Transactions,
		At:             p.now().UTC(),
	}
}

// never blocks the state machine
func (p *Publisher) enqueue(topic string, e Event) {
	data, err := json.Marshal(e)
	if nil != err {
		p.log.Errorf("%s: marshal: %s", e.ID, err)
		return
	}
	select {
	case p.queue <- message{topic: topic, data: data}:
	default:
		p.log.Warnf("%s: queue full, dropped: %s", e.ID, topic)
	}
}
