// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"strings"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Direction - which way an asset moves relative to its host chain
type Direction int

// possible directions
const (
	Mint Direction = iota // lock on the origin chain, mint on the host
	Burn                  // burn on the host, release on the origin chain
)

// String - lower case name
func (direction Direction) String() string {
	switch direction {
	case Mint:
		return "mint"
	case Burn:
		return "burn"
	default:
		return "unknown"
	}
}

// MarshalText - for JSON
func (direction Direction) MarshalText() ([]byte, error) {
	return []byte(direction.String()), nil
}

// UnmarshalText - from JSON
func (direction *Direction) UnmarshalText(s []byte) error {
	switch strings.ToLower(string(s)) {
	case "mint", "lock":
		*direction = Mint
	case "burn", "release":
		*direction = Burn
	default:
		return fault.ErrInvalidDirection
	}
	return nil
}

// Selector - names a network operation as "<ASSET>/to<Host>" for a
// mint or "<ASSET>/from<Host>" for a burn
type Selector struct {
	Asset     string
	Direction Direction
	Host      string
}

// ParseSelector - split a selector string into its parts
func ParseSelector(s string) (Selector, error) {
	parts := strings.Split(s, "/")
	if 2 != len(parts) || "" == parts[0] {
		return Selector{}, fault.ErrInvalidSelector
	}
	for _, c := range parts[0] {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return Selector{}, fault.ErrInvalidSelector
		}
	}

	selector := Selector{
		Asset: parts[0],
	}
	switch {
	case strings.HasPrefix(parts[1], "to"):
		selector.Direction = Mint
		selector.Host = parts[1][2:]
	case strings.HasPrefix(parts[1], "from"):
		selector.Direction = Burn
		selector.Host = parts[1][4:]
	default:
		return Selector{}, fault.ErrInvalidSelector
	}
	if "" == selector.Host {
		return Selector{}, fault.ErrInvalidSelector
	}
	return selector, nil
}

// NewSelector - build a selector from its parts
func NewSelector(asset string, direction Direction, host string) Selector {
	return Selector{
		Asset:     strings.ToUpper(asset),
		Direction: direction,
		Host:      host,
	}
}

// String - the wire form of the selector
func (selector Selector) String() string {
	if Burn == selector.Direction {
		return selector.Asset + "/from" + selector.Host
	}
	return selector.Asset + "/to" + selector.Host
}

// MarshalText - for JSON
func (selector Selector) MarshalText() ([]byte, error) {
	return []byte(selector.String()), nil
}

// UnmarshalText - from JSON
func (selector *Selector) UnmarshalText(s []byte) error {
	parsed, err := ParseSelector(string(s))
	if nil != err {
		return err
	}
	*selector = parsed
	return nil
}
