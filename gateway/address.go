// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/fault"
)

const (
	checksumLength = 4
	addressLength  = 1 + PubKeyHashLength + checksumLength
)

// DeriveGatewayAddress - base58check(prefix || HASH160(script))
func DeriveGatewayAddress(asset currency.Currency, pubKeyHash []byte, gHash [HashLength]byte, network chain.Network) (string, error) {
	prefix, err := asset.ScriptHashPrefix(network)
	if nil != err {
		return "", err
	}
	scriptHash, err := ScriptHash(pubKeyHash, gHash)
	if nil != err {
		return "", err
	}
	return encodeAddress(prefix, scriptHash), nil
}

func encodeAddress(version byte, hash []byte) string {
	buffer := make([]byte, 0, addressLength)
	buffer = append(buffer, version)
	buffer = append(buffer, hash...)
	buffer = append(buffer, checksum(buffer)...)
	return base58.Encode(buffer)
}

// double SHA-256, first four bytes
func checksum(data []byte) []byte {
	d := sha256.Sum256(data)
	d = sha256.Sum256(d[:])
	return d[:checksumLength]
}

// AddressKind - what a decoded address pays to
type AddressKind int

// possible address kinds
const (
	ScriptHashAddress AddressKind = iota
	PubKeyHashAddress
)

// DecodedAddress - the parts of a base58check address
type DecodedAddress struct {
	Kind    AddressKind
	Version byte
	Hash    []byte
}

// DecodeAddress - check the checksum, length and version byte of an
// address for the asset and network
func DecodeAddress(asset currency.Currency, address string, network chain.Network) (DecodedAddress, error) {
	p, err := asset.NetworkParams(network)
	if nil != err {
		return DecodedAddress{}, err
	}

	addr, err := base58.Decode(address)
	if nil != err || addressLength != len(addr) {
		return DecodedAddress{}, fault.ErrInvalidAddress
	}

	n := addressLength - checksumLength
	if !bytes.Equal(checksum(addr[:n]), addr[n:]) {
		return DecodedAddress{}, fault.ErrInvalidAddress
	}

	decoded := DecodedAddress{
		Version: addr[0],
		Hash:    append([]byte{}, addr[1:n]...),
	}
	switch addr[0] {
	case p.ScriptHashPrefix:
		decoded.Kind = ScriptHashAddress
	case p.PubKeyHashPrefix:
		decoded.Kind = PubKeyHashAddress
	default:
		return DecodedAddress{}, fault.ErrInvalidAddress
	}
	return decoded, nil
}

// ValidateAddress - true if the address can receive the asset on the network
func ValidateAddress(asset currency.Currency, address string, network chain.Network) error {
	_, err := DecodeAddress(asset, address, network)
	return err
}
