// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/configuration"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/gateway"
	"github.com/bitmark-inc/gatewayd/lightnode"
	"github.com/bitmark-inc/gatewayd/metrics"
	"github.com/bitmark-inc/gatewayd/publish"
	"github.com/bitmark-inc/gatewayd/transfer"
	"github.com/bitmark-inc/gatewayd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublicKeyFile  = "publish.public"
	defaultPrivateKeyFile = "publish.private"

	defaultLevelDBDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "gateway.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRequestsPerSecond = 5
	defaultBurst             = 10
)


// DatabaseType - where transfers are kept
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LightnodeType - the signing network's RPC endpoint
type LightnodeType struct {
	URL               string  `gluamapper:"url" json:"url"`
	RequestsPerSecond float64 `gluamapper:"requests_per_second" json:"requests_per_second"`
	Burst             int     `gluamapper:"burst" json:"burst"`
}

// TimingType - polling in seconds, zero selects the built in default
type TimingType struct {
	DepositInterval  int `gluamapper:"deposit_interval" json:"deposit_interval"`
	ResponseInterval int `gluamapper:"response_interval" json:"response_interval"`
	CallTimeout      int `gluamapper:"call_timeout" json:"call_timeout"`
	Lifetime         int `gluamapper:"lifetime" json:"lifetime"`
}

// ProviderType - an explorer added to or replacing the defaults
type ProviderType struct {
	Kind     string `gluamapper:"kind" json:"kind"` // esplora, blockchair or sochain
	Name     string `gluamapper:"name" json:"name"`
	URL      string `gluamapper:"url" json:"url"`
	Network  string `gluamapper:"network" json:"network"`
	Priority int    `gluamapper:"priority" json:"priority"`
	Timeout  int    `gluamapper:"timeout" json:"timeout"`
}

// AssetType - per origin chain settings, keyed by asset symbol
type AssetType struct {
	Confirmations uint64         `gluamapper:"confirmations" json:"confirmations"`
	Defaults      bool           `gluamapper:"defaults" json:"defaults"`
	Providers     []ProviderType `gluamapper:"providers" json:"providers"`
}

// HostType - per host chain settings, keyed by host chain name
type HostType struct {
	URL           string            `gluamapper:"url" json:"url"`
	PrivateKey    string            `gluamapper:"private_key" json:"-"`
	Confirmations uint64            `gluamapper:"confirmations" json:"confirmations"`
	Gateways      map[string]string `gluamapper:"gateways" json:"gateways"` // asset symbol → contract
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory    string                `gluamapper:"data_directory" json:"data_directory"`
	Network          string                `gluamapper:"network" json:"network"`
	Database         DatabaseType          `gluamapper:"database" json:"database"`
	Lightnode        LightnodeType         `gluamapper:"lightnode" json:"lightnode"`
	NetworkPublicKey string                `gluamapper:"network_public_key" json:"network_public_key"`
	Timing           TimingType            `gluamapper:"timing" json:"timing"`
	Assets           map[string]AssetType  `gluamapper:"assets" json:"assets"`
	Hosts            map[string]HostType   `gluamapper:"hosts" json:"hosts"`
	Publishing       publish.Configuration `gluamapper:"publishing" json:"publishing"`
	Metrics          metrics.Configuration `gluamapper:"metrics" json:"metrics"`
	Logging          logger.Configuration  `gluamapper:"logging" json:"logging"`

	// derived values
	network   chain.Network
	publicKey []byte
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Network:       chain.Testnet.String(),

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "", // network name
		},

		Lightnode: LightnodeType{
			RequestsPerSecond: defaultRequestsPerSecond,
			Burst:             defaultBurst,
		},

		Publishing: publish.Configuration{
			PublicKey:  defaultPublicKeyFile,
			PrivateKey: defaultPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	options.network, err = chain.Parse(options.Network)
	if nil != err {
		return nil, fmt.Errorf("network: %q  error: %w", options.Network, err)
	}
	options.Network = options.network.String()

	if "" == options.Database.Name {
		options.Database.Name = options.Network
	}

	if "" == options.Lightnode.URL {
		options.Lightnode.URL, err = lightnode.Endpoint(options.Network)
		if nil != err {
			return nil, err
		}
	}

	if "" == options.NetworkPublicKey {
		return nil, fmt.Errorf("network_public_key: %w", fault.ErrMissingConfiguration)
	}
	options.publicKey, err = hex.DecodeString(options.NetworkPublicKey)
	if nil != err {
		return nil, fmt.Errorf("network_public_key: %w", fault.ErrInvalidPublicKey)
	}

	for symbol := range options.Assets {
		if _, err := currency.FromString(symbol); nil != err {
			return nil, fmt.Errorf("assets: %q  error: %w", symbol, err)
		}
	}
	for name, h := range options.Hosts {
		if "" == h.URL {
			return nil, fmt.Errorf("hosts: %q  url: %w", name, fault.ErrMissingConfiguration)
		}
		for symbol, contract := range h.Gateways {
			if _, err := currency.FromString(symbol); nil != err {
				return nil, fmt.Errorf("hosts: %q  gateway: %q  error: %w", name, symbol, err)
			}
			if _, err := gateway.ParseHostAddress(contract); nil != err {
				return nil, fmt.Errorf("hosts: %q  gateway: %q  error: %w", name, symbol, err)
			}
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names, then add the
	// correct directory prefix
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	if err := util.MakeDirectories(options.Database.Directory, options.Logging.Directory); nil != err {
		return nil, err
	}

	return options, nil
}

// the machine timing from the configured seconds
func (c *Configuration) timing() transfer.Timing {
	return transfer.Timing{
		DepositInterval:  seconds(c.Timing.DepositInterval),
		ResponseInterval: seconds(c.Timing.ResponseInterval),
		CallTimeout:      seconds(c.Timing.CallTimeout),
	}
}

// zero selects transfer.DefaultLifetime
func (c *Configuration) lifetime() time.Duration {
	return seconds(c.Timing.Lifetime)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
