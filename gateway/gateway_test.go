// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway_test

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/gateway"
)

const (
	networkPublicKey = "030dd65f7db2920bb229912e3f4213dd150e5f972c9b73e9be714d844561ac355c"
	commitmentHash   = "cQ+CJ8bOP4RMopOCNDvbQ020Eu8KRpYykurZyKNFM1I="
)

func fromHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "hex: %q", s)
	return b
}

func testHash(t *testing.T) [gateway.HashLength]byte {
	b, err := base64.StdEncoding.DecodeString(commitmentHash)
	require.NoError(t, err, "base64")
	var h [gateway.HashLength]byte
	copy(h[:], b)
	return h
}

func TestScript(t *testing.T) {
	pkh := gateway.PubKeyHash(fromHex(t, networkPublicKey))
	assert.Equal(t, "c998b2a88ac96676e14f07739003419799a6823a", hex.EncodeToString(pkh), "public key hash")

	script, err := gateway.DeriveScript(pkh, testHash(t))
	require.NoError(t, err, "script")
	assert.Equal(t,
		"20710f8227c6ce3f844ca29382343bdb434db412ef0a46963292ead9c8a3453352"+
			"7576a914c998b2a88ac96676e14f07739003419799a6823a88ac",
		hex.EncodeToString(script), "script")

	pubKeyScript, err := gateway.PubKeyScript(pkh, testHash(t))
	require.NoError(t, err, "pub key script")
	assert.Equal(t, "a914b8a47eede573bb6cf9e094be189256b73c562f2187", hex.EncodeToString(pubKeyScript), "pub key script")

	_, err = gateway.DeriveScript(pkh[:19], testHash(t))
	assert.Equal(t, fault.ErrInvalidPublicKeyHash, err, "short hash")
}

func TestGatewayAddresses(t *testing.T) {
	items := []struct {
		asset    currency.Currency
		network  chain.Network
		expected string
	}{
		{currency.Bitcoin, chain.Mainnet, "3JXKKD9myuKRRWN2oRkY5Z1HU65b58cTRj"},
		{currency.Bitcoin, chain.Testnet, "2NA5XNx5obMpmdHzaUZNQhVzYgSHkuvko1P"},
		{currency.Bitcoin, chain.Regtest, "2NA5XNx5obMpmdHzaUZNQhVzYgSHkuvko1P"},
		{currency.BitcoinCash, chain.Mainnet, "3JXKKD9myuKRRWN2oRkY5Z1HU65b58cTRj"},
		{currency.Litecoin, chain.Mainnet, "MQjTd6Zjw2ArE1dvuJjsuCFgnng3AVW4RX"},
		{currency.Litecoin, chain.Testnet, "QdSHVxx3cTsrmUkd6fQRnCRyppjaq9X8eT"},
		{currency.Dogecoin, chain.Mainnet, "A9Ga44Dg3yCKKsjWDZQxKgdfAfTdCP5KXe"},
		{currency.Dogecoin, chain.Testnet, "2NA5XNx5obMpmdHzaUZNQhVzYgSHkuvko1P"},
		{currency.Bitblocks, chain.Mainnet, "Se8JRWSVANCEreT4Dm52CpnuyM2JMGRS3v"},
		{currency.Bitblocks, chain.Testnet, "yd9kEsPfqFshq2Bj74iZYUkVSBrw9yHXEU"},
	}

	pkh := gateway.PubKeyHash(fromHex(t, networkPublicKey))

	for i, item := range items {
		address, err := gateway.DeriveGatewayAddress(item.asset, pkh, testHash(t), item.network)
		require.NoError(t, err, "%d: %s %s", i, item.asset, item.network)
		assert.Equal(t, item.expected, address, "%d: %s %s", i, item.asset, item.network)

		// same inputs must always give the same address
		again, err := gateway.DeriveGatewayAddress(item.asset, pkh, testHash(t), item.network)
		require.NoError(t, err, "%d: again", i)
		assert.Equal(t, address, again, "%d: deterministic", i)

		decoded, err := gateway.DecodeAddress(item.asset, address, item.network)
		require.NoError(t, err, "%d: decode", i)
		assert.Equal(t, gateway.ScriptHashAddress, decoded.Kind, "%d: kind", i)
		assert.Equal(t, "b8a47eede573bb6cf9e094be189256b73c562f21", hex.EncodeToString(decoded.Hash), "%d: hash", i)
	}
}

func TestUnsupportedNetwork(t *testing.T) {
	pkh := gateway.PubKeyHash(fromHex(t, networkPublicKey))
	for _, asset := range []currency.Currency{currency.BitcoinCash, currency.Dogecoin, currency.Litecoin, currency.Bitblocks} {
		_, err := gateway.DeriveGatewayAddress(asset, pkh, testHash(t), chain.Regtest)
		assert.Equal(t, fault.ErrUnsupportedNetwork, err, "%s regtest", asset)
	}
}

func TestDecodeAddress(t *testing.T) {
	decoded, err := gateway.DecodeAddress(currency.Bitcoin, "mytu3FGw8cTzGTBTQZoVcZ2CZaYpRdk2YA", chain.Testnet)
	require.NoError(t, err, "testnet p2pkh")
	assert.Equal(t, gateway.PubKeyHashAddress, decoded.Kind, "kind")
	assert.Equal(t, byte(0x6f), decoded.Version, "version")

	err = gateway.ValidateAddress(currency.Litecoin, "Ldbu1QVnQFGnk9Pzs8pR4esduoKPeKAnAz", chain.Mainnet)
	assert.NoError(t, err, "litecoin p2pkh")

	invalid := []struct {
		asset   currency.Currency
		address string
		network chain.Network
	}{
		{currency.Bitcoin, "1KNwkCBxKb2jVLhqgzq7ndoshax7X9BMmV", chain.Testnet},  // mainnet address on testnet
		{currency.Bitcoin, "3JXKKD9myuKRRWN2oRkY5Z1HU65b58cTRk", chain.Mainnet},  // bad checksum
		{currency.Bitcoin, "3JXKKD9myuKRRWN2oRkY5Z1HU65b58cTR", chain.Mainnet},   // short
		{currency.Bitcoin, "0JXKKD9myuKRRWN2oRkY5Z1HU65b58cTRj", chain.Mainnet},  // not base58
		{currency.Litecoin, "3JXKKD9myuKRRWN2oRkY5Z1HU65b58cTRj", chain.Mainnet}, // bitcoin address for litecoin
	}
	for i, item := range invalid {
		err := gateway.ValidateAddress(item.asset, item.address, item.network)
		assert.Equal(t, fault.ErrInvalidAddress, err, "%d: %q", i, item.address)
	}
}

func TestCommitment(t *testing.T) {
	token, err := gateway.ParseHostAddress("B116c1a20647D5d1dD662C2f2B10C0a4A6124794")
	require.NoError(t, err, "token")
	to, err := gateway.ParseHostAddress("0x9e3feaf5f0483b2e196db31635734f627fdfd254")
	require.NoError(t, err, "to")

	pHash := gateway.PHash([]byte{})
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(pHash[:]), "empty payload")

	c := gateway.Commitment{
		PHash:  pHash,
		Amount: big.NewInt(10000),
		Token:  token,
		To:     to,
	}
	gHash, err := gateway.DeriveCommitment(c, chain.Testnet)
	require.NoError(t, err, "commitment")
	assert.Equal(t, "3700c75a1e118ccd213ae77f599f5712a65cebaf776f3e36c4bfe1012e4384f8", hex.EncodeToString(gHash[:]), "gHash")

	c.Nonce[31] = 1
	gHash, err = gateway.DeriveCommitment(c, chain.Testnet)
	require.NoError(t, err, "commitment")
	assert.Equal(t, "547568428a5c287945347ef7128fe494f491ad49c25fccceb963bc53acfcf63d", hex.EncodeToString(gHash[:]), "changed nonce")

	_, err = gateway.DeriveCommitment(c, chain.Network("devnet"))
	assert.Equal(t, fault.ErrUnsupportedNetwork, err, "bad network")

	_, err = gateway.ParseHostAddress("0x1234")
	assert.Equal(t, fault.ErrInvalidAddress, err, "short host address")
}

func TestNHash(t *testing.T) {
	txID := fromHex(t, "baa534e7ec3a5cf78915bcef7726ff9d0a2ddee78a69b90d1eb7397b3d717052")
	nHash, err := gateway.NHash([gateway.HashLength]byte{}, txID, 0)
	require.NoError(t, err, "nHash")
	assert.Equal(t, "983b89549335f096e7d35cb22f0beaf94991aa0837ecde14e32619b091c23e45", hex.EncodeToString(nHash[:]), "nHash")
}

func TestDerive(t *testing.T) {
	to, err := gateway.ParseHostAddress("9e3feaf5f0483b2e196db31635734f627fdfd254")
	require.NoError(t, err, "to")

	p := gateway.Parameters{
		Asset:     currency.Bitcoin,
		Network:   chain.Testnet,
		PublicKey: fromHex(t, networkPublicKey),
		Commitment: gateway.Commitment{
			PHash:  gateway.PHash(nil),
			Amount: big.NewInt(10000),
			To:     to,
		},
	}
	g1, err := gateway.Derive(p)
	require.NoError(t, err, "derive")
	g2, err := gateway.Derive(p)
	require.NoError(t, err, "derive again")
	assert.Equal(t, g1, g2, "deterministic")

	p.Commitment.Amount = big.NewInt(10001)
	g3, err := gateway.Derive(p)
	require.NoError(t, err, "changed amount")
	assert.NotEqual(t, g1.Address, g3.Address, "amount is committed")
}
