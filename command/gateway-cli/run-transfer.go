// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/background"
	"github.com/bitmark-inc/gatewayd/evm"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
)

func runMint(c *cli.Context) error {

	m := getMetadata(c)

	p, err := transferParameters(c, transaction.Mint)
	if nil != err {
		return err
	}
	p.Token, err = checkRequired("token", c.String("token"))
	if nil != err {
		return err
	}
	p.Payload, err = checkHex("payload", c.String("payload"))
	if nil != err {
		return err
	}

	t, err := transfer.New(p, time.Now())
	if nil != err {
		return err
	}

	e, err := newEngine(m.config, console{w: m.e})
	if nil != err {
		return err
	}
	defer e.close()

	chain, err := e.resolver.chain(t.Asset)
	if nil != err {
		return err
	}
	if err := chain.Prepare(t); nil != err {
		return err
	}

	fmt.Fprintf(m.w, "transfer: %s\n", t.ID)
	fmt.Fprintf(m.w, "send %d to: %s\n", t.Amount, t.GatewayAddress)
	fmt.Fprintf(m.w, "before: %s\n", t.Expiry.Format(time.RFC3339))

	return drive(c, e, t)
}

func runBurn(c *cli.Context) error {

	m := getMetadata(c)

	p, err := transferParameters(c, transaction.Burn)
	if nil != err {
		return err
	}
	burnTx, err := checkRequired("burn-tx", c.String("burn-tx"))
	if nil != err {
		return err
	}
	hash, err := evm.ParseHash(burnTx)
	if nil != err {
		return err
	}

	t, err := transfer.New(p, time.Now())
	if nil != err {
		return err
	}
	t.SourceHash = hash.Hex()

	e, err := newEngine(m.config, console{w: m.e})
	if nil != err {
		return err
	}
	defer e.close()

	fmt.Fprintf(m.w, "transfer: %s\n", t.ID)
	fmt.Fprintf(m.w, "burn: %s\n", t.SourceHash)

	return drive(c, e, t)
}

func transferParameters(c *cli.Context, direction transaction.Direction) (transfer.Parameters, error) {
	m := getMetadata(c)

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return transfer.Parameters{}, err
	}
	to, err := checkRequired("to", c.String("to"))
	if nil != err {
		return transfer.Parameters{}, err
	}
	amount := c.Uint64("amount")
	if 0 == amount {
		return transfer.Parameters{}, fmt.Errorf("amount is required")
	}

	return transfer.Parameters{
		Direction: direction,
		Network:   m.config.network,
		Asset:     asset,
		Host:      c.String("host"),
		To:        to,
		Amount:    amount,
		User:      c.String("user"),
		Lifetime:  m.config.lifetime(),
	}, nil
}

// start a new transfer and wait for it unless detached
//
// an interrupted transfer stays stored and run resumes it
func drive(c *cli.Context, e *engine, t *transfer.Transfer) error {
	m := getMetadata(c)

	if c.Bool("detach") {
		if _, err := e.resolver.Resolve(t); nil != err {
			return err
		}
		exists, err := e.store.Has(t.ID)
		if nil != err {
			return err
		}
		if exists {
			return fault.ErrTransferExists
		}
		return e.store.Put(t)
	}

	p := background.Start(e.processes, nil)
	defer p.Stop()

	if err := e.manager.Start(t); nil != err {
		return err
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	// nil once the machine has already stopped
	if done := e.manager.Wait(t.ID); nil != done {
		select {
		case <-done:
		case sig := <-ch:
			fmt.Fprintf(m.e, "received signal: %v  transfer: %s is resumable\n", sig, t.ID)
			return nil
		}
	}

	final, err := e.manager.Status(t.ID)
	if nil != err {
		return err
	}
	return printJson(m.w, final)
}

func runDaemon(c *cli.Context) error {

	m := getMetadata(c)

	e, err := newEngine(m.config)
	if nil != err {
		return err
	}
	defer e.close()

	log := e.log
	log.Info("starting…")

	processes := append(e.processes, e.manager)
	p := background.Start(processes, nil)

	// wait for CTRL-C before shutting down to allow manual testing
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if m.verbose {
		fmt.Fprintf(m.e, "received signal: %v\n", sig)
	}

	p.Stop()
	log.Info("stopped")
	return nil
}
