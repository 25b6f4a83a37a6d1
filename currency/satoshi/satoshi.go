// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package satoshi

import (
	"math"
	"strconv"
	"strings"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Decimals - places after the point in a whole coin
const Decimals = 8

const perCoin = 100000000

// Parse - convert a decimal coin amount to satoshis
//
// i.e. "0.00000001" will convert to uint64(1); more than eight decimal
// places, signs and any other characters are rejected
func Parse(coins string) (uint64, error) {
	if "" == coins || "." == coins {
		return 0, fault.ErrInvalidAmount
	}

	s := uint64(0)
	point := false
	decimals := 0

	for _, b := range []byte(coins) {
		switch {
		case b >= '0' && b <= '9':
			if point {
				decimals += 1
				if decimals > Decimals {
					return 0, fault.ErrInvalidAmount
				}
			}
			d := uint64(b - '0')
			if s > (math.MaxUint64-d)/10 {
				return 0, fault.ErrValueOutOfRange
			}
			s = s*10 + d
		case '.' == b && !point:
			point = true
		default:
			return 0, fault.ErrInvalidAmount
		}
	}
	for decimals < Decimals {
		if s > math.MaxUint64/10 {
			return 0, fault.ErrValueOutOfRange
		}
		s *= 10
		decimals += 1
	}

	return s, nil
}

// Format - satoshis as a decimal coin amount without trailing zeros
func Format(satoshi uint64) string {
	whole := strconv.FormatUint(satoshi/perCoin, 10)
	fraction := satoshi % perCoin
	if 0 == fraction {
		return whole
	}
	f := strconv.FormatUint(fraction, 10)
	f = strings.Repeat("0", Decimals-len(f)) + f
	return whole + "." + strings.TrimRight(f, "0")
}
