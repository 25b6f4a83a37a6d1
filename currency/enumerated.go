// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/logger"
)

// Currency - enumeration of the UTXO assets that can be locked
type Currency uint64

// possible currency values
const (
	Nothing      Currency = iota // this must be the first value
	Bitcoin      Currency = iota
	BitcoinCash  Currency = iota
	Dogecoin     Currency = iota
	Litecoin     Currency = iota
	Bitblocks    Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
	Count        int      = int(Last) // count of currencies
)

// internal conversion
func toString(c Currency) ([]byte, error) {
	switch c {
	case Nothing:
		return []byte{}, nil
	case Bitcoin:
		return []byte("BTC"), nil
	case BitcoinCash:
		return []byte("BCH"), nil
	case Dogecoin:
		return []byte("DOGE"), nil
	case Litecoin:
		return []byte("LTC"), nil
	case Bitblocks:
		return []byte("XBB"), nil
	default:
		return []byte{}, fault.ErrInvalidAsset
	}
}

// convert a string to a currency
func fromString(in string) (Currency, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "btc", "bitcoin":
		return Bitcoin, nil
	case "bch", "bitcoincash":
		return BitcoinCash, nil
	case "doge", "dogecoin":
		return Dogecoin, nil
	case "ltc", "litecoin":
		return Litecoin, nil
	case "xbb", "bitblocks":
		return Bitblocks, nil
	default:
		return Nothing, fault.ErrInvalidAsset
	}
}

// FromString - parse an asset symbol or chain name
func FromString(in string) (Currency, error) {
	return fromString(in)
}

// convert a currency to its string symbol
func (currency Currency) String() string {
	s, err := toString(currency)
	if nil != err {
		logger.Panicf("invalid currency enumeration: %d", currency)
	}
	return string(s)
}

// GoString - both enum value and symbol, for debugging
func (currency Currency) GoString() string {
	return fmt.Sprintf("<Currency#%d:%q>", currency, currency.String())
}

// Scan - convert a currency string
func (currency *Currency) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'Z' {
			return true
		}
		if c >= 'a' && c <= 'z' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	parsed, err := fromString(string(token))
	if nil != err {
		return err
	}

	*currency = parsed
	return nil
}

// IsValid - valid currency if in range of First to Last
// Nothing is not considered as valid
func (currency Currency) IsValid() bool {
	return currency >= First && currency <= Last
}
