// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewayd/fault"
)

type metadata struct {
	config  *Configuration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that run without a configuration file
var noConfiguration = map[string]bool{
	"":        true,
	"help":    true,
	"h":       true,
	"hash":    true,
	"keypair": true,
	"version": true,
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "gateway-cli"
	app.Usage = "move assets between their origin chains and host chains"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.StringSliceFlag{
			Name:  "define, D",
			Usage: " set a configuration variable `NAME=VALUE`",
		},
	}

	transferFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "asset, a",
			Value: "",
			Usage: "*asset symbol `SYMBOL`",
		},
		cli.StringFlag{
			Name:  "host, H",
			Value: "Ethereum",
			Usage: " host chain `NAME`",
		},
		cli.StringFlag{
			Name:  "to, t",
			Value: "",
			Usage: "*recipient `ADDRESS`",
		},
		cli.Uint64Flag{
			Name:  "amount, m",
			Value: 0,
			Usage: "*amount in the smallest unit `VALUE`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "address",
			Usage:     "derive the gateway address of a mint",
			ArgsUsage: "\n   (* = required)",
			Flags: append(transferFlags,
				cli.StringFlag{
					Name:  "token, k",
					Value: "",
					Usage: "*host chain token contract `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "nonce, n",
					Value: "",
					Usage: " 32 byte nonce `HEX` [random]",
				},
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: " contract call payload `HEX`",
				},
			),
			Action: runAddress,
		},
		{
			Name:      "hash",
			Usage:     "compute the hash of a network transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "selector, s",
					Value: "",
					Usage: "*operation `SELECTOR` e.g. BTC/toEthereum",
				},
				cli.StringFlag{
					Name:  "tx-version",
					Value: "1",
					Usage: " transaction `VERSION`",
				},
				cli.StringFlag{
					Name:  "input, i",
					Value: "",
					Usage: "*typed input `JSON` {\"t\": type, \"v\": value}",
				},
			},
			Action: runHash,
		},
		{
			Name:      "deposits",
			Usage:     "list the outputs paying an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset symbol `SYMBOL`",
				},
				cli.StringFlag{
					Name:  "address, A",
					Value: "",
					Usage: "*origin chain `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "confirmations, n",
					Value: 0,
					Usage: " minimum `COUNT`",
				},
			},
			Action: runDeposits,
		},
		{
			Name:      "mint",
			Usage:     "lock an asset on its origin chain and mint it on a host chain",
			ArgsUsage: "\n   (* = required)",
			Flags: append(transferFlags,
				cli.StringFlag{
					Name:  "token, k",
					Value: "",
					Usage: "*host chain token contract `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: " contract call payload `HEX`",
				},
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: " user reference `STRING`",
				},
				cli.BoolFlag{
					Name:  "detach, d",
					Usage: " store the transfer and exit, run resumes it",
				},
			),
			Action: runMint,
		},
		{
			Name:      "burn",
			Usage:     "release an asset on its origin chain from a host chain burn",
			ArgsUsage: "\n   (* = required)",
			Flags: append(transferFlags,
				cli.StringFlag{
					Name:  "burn-tx, b",
					Value: "",
					Usage: "*host chain burn transaction `HASH`",
				},
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: " user reference `STRING`",
				},
				cli.BoolFlag{
					Name:  "detach, d",
					Usage: " store the transfer and exit, run resumes it",
				},
			),
			Action: runBurn,
		},
		{
			Name:      "run",
			Usage:     "drive all stored transfers until interrupted",
			ArgsUsage: " ",
			Action:    runDaemon,
		},
		{
			Name:      "status",
			Usage:     "show a stored transfer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*transfer `ID`",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "list",
			Usage:     "list stored transfers",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all, A",
					Usage: " include terminal transfers",
				},
				cli.DurationFlag{
					Name:  "since, s",
					Value: 0,
					Usage: " only transfers created within `DURATION` e.g. 24h",
				},
			},
			Action: runList,
		},
		{
			Name:      "cancel",
			Usage:     "cancel a stored transfer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*transfer `ID`",
				},
				cli.StringFlag{
					Name:  "reason, r",
					Value: "",
					Usage: " `TEXT` for the log",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "prune",
			Usage:     "delete old terminal transfers",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "age, g",
					Value: 30 * 24 * time.Hour,
					Usage: " minimum `DURATION` since creation",
				},
			},
			Action: runPrune,
		},
		{
			Name:      "keypair",
			Usage:     "create the publisher's CURVE key files",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "public, P",
					Value: defaultPublicKeyFile,
					Usage: " public key `FILE`",
				},
				cli.StringFlag{
					Name:  "private, S",
					Value: defaultPrivateKeyFile,
					Usage: " private key `FILE`",
				},
			},
			Action: runKeyPair,
		},
		{
			Name:  "version",
			Usage: "display gateway-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		m := &metadata{
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		command := c.Args().Get(0)
		if noConfiguration[command] {
			return nil
		}

		file := c.GlobalString("config-file")
		if "" == file {
			return fmt.Errorf("config-file is required")
		}

		variables, err := parseVariables(c.GlobalStringSlice("define"))
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		configuration, err := getConfiguration(file, variables)
		if nil != err {
			return err
		}
		m.config = configuration

		if err := logger.Initialise(configuration.Logging); nil != err {
			return fmt.Errorf("logger setup failed with error: %s", err)
		}
		if err := fault.Initialise(); nil != err {
			return err
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if m, ok := c.App.Metadata["config"].(*metadata); ok && nil != m.config {
			fault.Finalise()
			logger.Finalise()
		}
		return nil
	}

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}
