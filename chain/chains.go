// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"strings"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Network - which deployment of the signing network and of each
// blockchain a transfer runs on
type Network string

// names of all networks
const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// Valid - validate a network name
func Valid(name string) bool {
	switch Network(name) {
	case Mainnet, Testnet, Regtest:
		return true
	default:
		return false
	}
}

// Parse - network from a case insensitive name
func Parse(name string) (Network, error) {
	n := strings.ToLower(name)
	if !Valid(n) {
		return "", fault.ErrInvalidNetwork
	}
	return Network(n), nil
}

// String - the network name
func (network Network) String() string {
	return string(network)
}

// IsTestnet - true for any network that does not carry real value
func (network Network) IsTestnet() bool {
	return Mainnet != network
}

// UnmarshalText - validated conversion from JSON
func (network *Network) UnmarshalText(s []byte) error {
	n, err := Parse(string(s))
	if nil != err {
		return err
	}
	*network = n
	return nil
}
