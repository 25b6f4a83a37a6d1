// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/fault"
)

type currencyTest struct {
	str string
	c   currency.Currency
	j   string
}

var valid = []currencyTest{
	{"", currency.Nothing, `""`},
	{"btc", currency.Bitcoin, `"BTC"`},
	{"BTC", currency.Bitcoin, `"BTC"`},
	{"Bitcoin", currency.Bitcoin, `"BTC"`},
	{"bch", currency.BitcoinCash, `"BCH"`},
	{"BitcoinCash", currency.BitcoinCash, `"BCH"`},
	{"DOGE", currency.Dogecoin, `"DOGE"`},
	{"dogecoin", currency.Dogecoin, `"DOGE"`},
	{"ltc", currency.Litecoin, `"LTC"`},
	{"LiteCoin", currency.Litecoin, `"LTC"`},
	{"XBB", currency.Bitblocks, `"XBB"`},
	{"Bitblocks", currency.Bitblocks, `"XBB"`},
}

var invalid = []string{
	"389749837598",
	"null",
	"eth",
}

func TestValidString(t *testing.T) {
	for index, test := range valid {
		if "" == test.str {
			continue // Sscan cannot read an empty token
		}

		var c currency.Currency
		n, err := fmt.Sscan(test.str, &c)
		if nil != err {
			t.Fatalf("%d: string to currency error: %s", index, err)
		}

		if 1 != n {
			t.Fatalf("%d: scanned %d items expected to scan 1", index, n)
		}

		if c != test.c {
			t.Errorf("%d: %q converted to: %#v  expected: %#v", index, test.str, c, test.c)
		}
	}
}

func TestInvalidString(t *testing.T) {
	for index, test := range invalid {

		var c currency.Currency
		n, err := fmt.Sscan(test, &c)
		if fault.ErrInvalidAsset != err {
			t.Fatalf("%d: string to currency error: %s", index, err)
		}

		if 0 != n {
			t.Fatalf("%d: scanned %d items expected to scan 0(zero)", index, n)
		}
	}
}

func TestMarshalling(t *testing.T) {
	for index, test := range valid {
		buffer, err := json.Marshal(test.c)
		assert.NoError(t, err, "%d: marshal", index)
		assert.Equal(t, test.j, string(buffer), "%d: marshal", index)

		var c currency.Currency
		err = json.Unmarshal([]byte(`"`+test.str+`"`), &c)
		assert.NoError(t, err, "%d: unmarshal", index)
		assert.Equal(t, test.c, c, "%d: unmarshal", index)
	}
}

func TestScriptHashPrefix(t *testing.T) {
	items := []struct {
		c        currency.Currency
		network  chain.Network
		expected byte
	}{
		{currency.Bitcoin, chain.Mainnet, 0x05},
		{currency.Bitcoin, chain.Testnet, 0xc4},
		{currency.Bitcoin, chain.Regtest, 0xc4},
		{currency.BitcoinCash, chain.Mainnet, 0x05},
		{currency.BitcoinCash, chain.Testnet, 0xc4},
		{currency.Dogecoin, chain.Mainnet, 0x16},
		{currency.Dogecoin, chain.Testnet, 0xc4},
		{currency.Litecoin, chain.Mainnet, 0x32},
		{currency.Litecoin, chain.Testnet, 0x3a},
		{currency.Bitblocks, chain.Mainnet, 0x3f},
		{currency.Bitblocks, chain.Testnet, 0x8c},
	}

	for i, item := range items {
		prefix, err := item.c.ScriptHashPrefix(item.network)
		assert.NoError(t, err, "%d: %s %s", i, item.c, item.network)
		assert.Equal(t, item.expected, prefix, "%d: %s %s", i, item.c, item.network)
	}
}

func TestUnsupported(t *testing.T) {
	for c := currency.First; c <= currency.Last; c += 1 {
		if currency.Bitcoin == c {
			continue
		}
		_, err := c.ScriptHashPrefix(chain.Regtest)
		assert.Equal(t, fault.ErrUnsupportedNetwork, err, "%s regtest", c)
	}

	_, err := currency.Nothing.Confirmations(chain.Mainnet)
	assert.Equal(t, fault.ErrInvalidAsset, err, "nothing")

	n, err := currency.Bitcoin.Confirmations(chain.Mainnet)
	assert.NoError(t, err, "btc mainnet")
	assert.Equal(t, uint64(6), n, "btc mainnet")

	assert.Equal(t, "", currency.Bitcoin.TransactionLink(chain.Regtest, "ab"), "no regtest explorer")
	assert.Equal(t, "https://live.blockcypher.com/btc/tx/ab", currency.Bitcoin.TransactionLink(chain.Mainnet, "ab"), "mainnet link")
}
