// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/fault"
)

// Params - per network constants of a UTXO chain
type Params struct {
	ScriptHashPrefix byte   // base58check version byte of a P2SH address
	PubKeyHashPrefix byte   // base58check version byte of a P2PKH address
	Confirmations    uint64 // deposit depth before submission to the network
	Explorer         string // transaction link prefix, may be empty
}

type networkParams map[chain.Network]Params

// read only after initialisation
var params = map[Currency]networkParams{
	Bitcoin: {
		chain.Mainnet: {chaincfg.MainNetParams.ScriptHashAddrID, chaincfg.MainNetParams.PubKeyHashAddrID, 6, "https://live.blockcypher.com/btc/tx/"},
		chain.Testnet: {chaincfg.TestNet3Params.ScriptHashAddrID, chaincfg.TestNet3Params.PubKeyHashAddrID, 2, "https://live.blockcypher.com/btc-testnet/tx/"},
		chain.Regtest: {chaincfg.RegressionNetParams.ScriptHashAddrID, chaincfg.RegressionNetParams.PubKeyHashAddrID, 1, ""},
	},
	BitcoinCash: {
		chain.Mainnet: {0x05, 0x00, 15, "https://blockchair.com/bitcoin-cash/transaction/"},
		chain.Testnet: {0xc4, 0x6f, 2, ""},
	},
	Dogecoin: {
		chain.Mainnet: {0x16, 0x1e, 40, "https://live.blockcypher.com/doge/tx/"},
		chain.Testnet: {0xc4, 0x71, 2, ""},
	},
	Litecoin: {
		chain.Mainnet: {0x32, 0x30, 12, "https://live.blockcypher.com/ltc/tx/"},
		chain.Testnet: {0x3a, 0x6f, 2, ""},
	},
	Bitblocks: {
		chain.Mainnet: {0x3f, 0x1e, 6, "https://bitblocks.cc/tx/XBB/"},
		chain.Testnet: {0x8c, 0x7e, 2, "https://bitblocks.cc/tx/XBB/"},
	},
}

// NetworkParams - lookup the constants for a currency on a network
func (currency Currency) NetworkParams(network chain.Network) (Params, error) {
	n, ok := params[currency]
	if !ok {
		return Params{}, fault.ErrInvalidAsset
	}
	p, ok := n[network]
	if !ok {
		return Params{}, fault.ErrUnsupportedNetwork
	}
	return p, nil
}

// ScriptHashPrefix - P2SH version byte for a network
func (currency Currency) ScriptHashPrefix(network chain.Network) (byte, error) {
	p, err := currency.NetworkParams(network)
	if nil != err {
		return 0, err
	}
	return p.ScriptHashPrefix, nil
}

// Confirmations - default deposit depth for a network
func (currency Currency) Confirmations(network chain.Network) (uint64, error) {
	p, err := currency.NetworkParams(network)
	if nil != err {
		return 0, err
	}
	return p.Confirmations, nil
}

// TransactionLink - explorer URL of a transaction, empty if none is known
func (currency Currency) TransactionLink(network chain.Network, txID string) string {
	p, err := currency.NetworkParams(network)
	if nil != err || "" == p.Explorer {
		return ""
	}
	return p.Explorer + txID
}

// PubKeyHashPrefix - P2PKH version byte for a network
func (currency Currency) PubKeyHashPrefix(network chain.Network) (byte, error) {
	p, err := currency.NetworkParams(network)
	if nil != err {
		return 0, err
	}
	return p.PubKeyHashPrefix, nil
}
