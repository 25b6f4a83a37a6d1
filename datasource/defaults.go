// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

import (
	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/util"
)

// public API roots
const (
	blockstreamURL = "https://blockstream.info"
	blockchairURL  = "https://api.blockchair.com"
	soChainURL     = "https://sochain.com/api/v2"
)

// SoChain is asked after the others
const soChainPriority = 15

// DefaultProviders - the public explorers for an asset and network
func DefaultProviders(asset currency.Currency, network chain.Network, fetcher *util.Fetcher) ([]Entry, error) {
	if chain.Mainnet != network && chain.Testnet != network {
		return nil, fault.ErrUnsupportedNetwork
	}
	testnet := chain.Testnet == network

	switch asset {
	case currency.Bitcoin:
		if testnet {
			return []Entry{
				{Provider: NewEsplora("blockstream/testnet", blockstreamURL+"/testnet/api", fetcher)},
				{Provider: NewBlockchair(blockchairURL, "bitcoin/testnet", fetcher)},
				{Provider: NewSoChain(soChainURL, "BTCTEST", fetcher), Priority: soChainPriority},
			}, nil
		}
		return []Entry{
			{Provider: NewEsplora("blockstream", blockstreamURL+"/api", fetcher)},
			{Provider: NewBlockchair(blockchairURL, "bitcoin", fetcher)},
			{Provider: NewSoChain(soChainURL, "BTC", fetcher), Priority: soChainPriority},
		}, nil

	case currency.Litecoin:
		if testnet {
			return []Entry{
				{Provider: NewSoChain(soChainURL, "LTCTEST", fetcher)},
			}, nil
		}
		return []Entry{
			{Provider: NewBlockchair(blockchairURL, "litecoin", fetcher)},
			{Provider: NewSoChain(soChainURL, "LTC", fetcher), Priority: soChainPriority},
		}, nil

	case currency.Dogecoin:
		if testnet {
			return []Entry{
				{Provider: NewSoChain(soChainURL, "DOGETEST", fetcher)},
			}, nil
		}
		return []Entry{
			{Provider: NewBlockchair(blockchairURL, "dogecoin", fetcher)},
			{Provider: NewSoChain(soChainURL, "DOGE", fetcher), Priority: soChainPriority},
		}, nil

	case currency.BitcoinCash:
		if testnet {
			return nil, fault.ErrUnsupportedNetwork
		}
		return []Entry{
			{Provider: NewBlockchair(blockchairURL, "bitcoin-cash", fetcher)},
		}, nil

	default:
		return nil, fault.ErrUnsupportedNetwork
	}
}
