// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/configuration"
	"github.com/bitmark-inc/gatewayd/fault"
)

type provider struct {
	Kind     string `gluamapper:"kind"`
	URL      string `gluamapper:"url"`
	Priority int    `gluamapper:"priority"`
}

type settings struct {
	Network   string              `gluamapper:"network"`
	Interval  int                 `gluamapper:"interval"`
	Providers []provider          `gluamapper:"providers"`
	Levels    map[string]string   `gluamapper:"levels"`
	Self      string              `gluamapper:"self"`
	Keep      string              `gluamapper:"keep"`
	Hosts     map[string]provider `gluamapper:"hosts"`
}

func writeFile(t *testing.T, content string) string {
	name := filepath.Join(t.TempDir(), "gateway.conf")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600), "write")
	return name
}

func TestParse(t *testing.T) {
	name := writeFile(t, `
local interval = 5 * 2
return {
    network = "test" .. "net",
    interval = interval,
    self = arg[0],
    providers = {
        { kind = "esplora", url = "https://blockstream.info/" .. network_path, priority = 5 },
        { kind = "sochain", url = "https://sochain.com/api/v2" },
    },
    levels = {
        transfer = "debug",
        DEFAULT = "warn",
    },
    hosts = {
        Ethereum = { url = "http://127.0.0.1:8545" },
    },
}
`)

	s := settings{
		Interval: 1,
		Keep:     "default",
	}
	err := configuration.ParseConfigurationFile(name, &s, map[string]string{"network_path": "testnet/api"})
	require.NoError(t, err, "parse")

	assert.Equal(t, "testnet", s.Network, "network")
	assert.Equal(t, 10, s.Interval, "interval")
	assert.Equal(t, name, s.Self, "arg[0]")
	assert.Equal(t, "default", s.Keep, "unset field keeps default")
	require.Len(t, s.Providers, 2, "providers")
	assert.Equal(t, "https://blockstream.info/testnet/api", s.Providers[0].URL, "variable")
	assert.Equal(t, 5, s.Providers[0].Priority, "priority")
	assert.Equal(t, 0, s.Providers[1].Priority, "no priority")
	assert.Equal(t, "debug", s.Levels["transfer"], "level")
	assert.Equal(t, "http://127.0.0.1:8545", s.Hosts["Ethereum"].URL, "host")
}

func TestParseErrors(t *testing.T) {
	var s settings

	err := configuration.ParseConfigurationFile(writeFile(t, `return "not a table"`), &s, nil)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "not a table")

	err = configuration.ParseConfigurationFile(writeFile(t, `return {`), &s, nil)
	assert.Error(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "missing.conf"), &s, nil)
	assert.Error(t, err, "missing file")

	err = configuration.ParseConfigurationFile(writeFile(t, `return {}`), s, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "not a pointer")
}
