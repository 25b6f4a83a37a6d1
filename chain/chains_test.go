// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/fault"
)

func TestParse(t *testing.T) {
	items := []struct {
		s        string
		expected chain.Network
	}{
		{"mainnet", chain.Mainnet},
		{"Testnet", chain.Testnet},
		{"REGTEST", chain.Regtest},
	}
	for i, item := range items {
		n, err := chain.Parse(item.s)
		assert.NoError(t, err, "%d: %q", i, item.s)
		assert.Equal(t, item.expected, n, "%d: %q", i, item.s)
	}

	_, err := chain.Parse("devnet")
	assert.Equal(t, fault.ErrInvalidNetwork, err, "devnet")

	var n chain.Network
	err = json.Unmarshal([]byte(`"local"`), &n)
	assert.Error(t, err, "json")

	assert.False(t, chain.Mainnet.IsTestnet(), "mainnet")
	assert.True(t, chain.Regtest.IsTestnet(), "regtest")
}
