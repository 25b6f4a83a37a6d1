// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/storage"
	"github.com/bitmark-inc/gatewayd/transfer"
	"github.com/bitmark-inc/gatewayd/zmqutil"
)

type listEntry struct {
	ID             string    `json:"id"`
	Selector       string    `json:"selector"`
	Amount         uint64    `json:"amount"`
	State          string    `json:"state"`
	GatewayAddress string    `json:"gatewayAddress,omitempty"`
	Created        time.Time `json:"created"`
	Expiry         time.Time `json:"expiry"`
}

func runStatus(c *cli.Context) error {

	m := getMetadata(c)

	id, err := checkRequired("id", c.String("id"))
	if nil != err {
		return err
	}

	store, err := openStorage(m.config, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	t, err := store.Get(id)
	if nil != err {
		return err
	}
	return printJson(m.w, t)
}

func runList(c *cli.Context) error {

	m := getMetadata(c)

	store, err := openStorage(m.config, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	var transfers []*transfer.Transfer
	if since := c.Duration("since"); since > 0 {
		transfers, err = store.Since(time.Now().Add(-since))
	} else {
		transfers, err = store.List()
	}
	if nil != err {
		return err
	}

	all := c.Bool("all")
	entries := make([]listEntry, 0, len(transfers))
	for _, t := range transfers {
		if t.IsTerminal() && !all {
			continue
		}
		entries = append(entries, listEntry{
			ID:             t.ID,
			Selector:       t.Selector().String(),
			Amount:         t.Amount,
			State:          t.State.String(),
			GatewayAddress: t.GatewayAddress,
			Created:        t.Created,
			Expiry:         t.Expiry,
		})
	}
	return printJson(m.w, entries)
}

// only for a transfer that is not being driven, the database cannot be
// opened while run holds it
func runCancel(c *cli.Context) error {

	m := getMetadata(c)

	id, err := checkRequired("id", c.String("id"))
	if nil != err {
		return err
	}

	store, err := openStorage(m.config, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	// no chains are needed to edit a stored transfer
	manager := transfer.NewManager(store, nil, nil, m.config.timing())
	defer manager.Stop()

	if err := manager.Cancel(id, c.String("reason")); nil != err {
		return err
	}

	t, err := store.Get(id)
	if nil != err {
		return err
	}
	return printJson(m.w, t)
}

// delete terminal transfers older than a cutoff
func runPrune(c *cli.Context) error {

	m := getMetadata(c)

	age := c.Duration("age")
	if age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	cutoff := time.Now().Add(-age)

	store, err := openStorage(m.config, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	transfers, err := store.List()
	if nil != err {
		return err
	}

	deleted := make([]string, 0)
	for _, t := range transfers {
		if !t.Created.Before(cutoff) {
			break
		}
		if !t.IsTerminal() {
			continue
		}
		if err := store.Delete(t.ID); nil != err {
			return err
		}
		deleted = append(deleted, t.ID)
	}
	return printJson(m.w, deleted)
}

func runKeyPair(c *cli.Context) error {

	m := getMetadata(c)

	publicKeyFile := c.String("public")
	privateKeyFile := c.String("private")

	if err := zmqutil.MakeKeyPair(publicKeyFile, privateKeyFile); nil != err {
		return err
	}

	return printJson(m.w, map[string]string{
		"public":  publicKeyFile,
		"private": privateKeyFile,
	})
}
