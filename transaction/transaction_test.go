// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/pack"
	"github.com/bitmark-inc/gatewayd/transaction"
)

// a BTC/toEthereum mint input; the type and value bytes match the
// reference submission byte for byte
const (
	fixtureTypeHex = "1400000009000000066f75747075741400000003000000086f7574706f696e74" +
		"140000000200000004686173680b00000005696e646578040000000576616c7565070000000c" +
		"7075624b65795363726970740b000000077061796c6f61640b0000000570686173680c000000" +
		"05746f6b656e0a00000002746f0a000000056e6f6e63650c000000056e686173680c00000005" +
		"67686173680c00000007677075626b65790b"

	fixtureValueHex = "00000020baa534e7ec3a5cf78915bcef7726ff9d0a2ddee78a69b90d1eb7397b3d717052" +
		"00000000" +
		"0000000000000000000000000000000000000000000000000000000000002710" +
		"00000017a914c616c1743a3cdca756184bed063a7019768b910387" +
		"00000000" +
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470" +
		"0000002842313136633161323036343744356431644436363243326632423130433061344136313234373934" +
		"0000002839653366656166356630343833623265313936646233313633353733346636323766646664323534" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"983b89549335f096e7d35cb22f0beaf94991aa0837ecde14e32619b091c23e45" +
		"53e0c127dbc01d46b9b41e2698ecb0fed2f2c95d3ed5d55fcd7668543f095c6b" +
		"00000021024c27e5610c701d857ff13464ea1592cf6e651bc6fde143f7d032b3298e7397e6"

	// sha256 over the length prefixed version and selector then the
	// typed input, as computed by NewHash
	fixtureHashHex = "0dc87c726c27c0bd10214ad2936121050dc3638722c73569fc029869a67d5ef7"

	// hash published with the reference submission; no layout tried so
	// far reproduces it (see DESIGN.md)
	publishedHashHex  = "c176ff935a1abd1e035e7609812b07d4332e8967e82f0545ba9bfd13790fbed4"
	publishedHashText = "wXb_k1oavR4DXnYJgSsH1DMuiWfoLwVFupv9E3kPvtQ"
)

func fromHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "hex: %q", s)
	return b
}

func to32(t *testing.T, s string) [32]byte {
	var a [32]byte
	b := fromHex(t, s)
	require.Equal(t, 32, len(b), "length of: %q", s)
	copy(a[:], b)
	return a
}

func fixtureInput(t *testing.T) transaction.MintInput {
	return transaction.MintInput{
		TxID:         fromHex(t, "baa534e7ec3a5cf78915bcef7726ff9d0a2ddee78a69b90d1eb7397b3d717052"),
		Index:        0,
		Value:        big.NewInt(10000),
		PubKeyScript: fromHex(t, "a914c616c1743a3cdca756184bed063a7019768b910387"),
		Payload:      []byte{},
		PHash:        to32(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		Token:        "B116c1a20647D5d1dD662C2f2B10C0a4A6124794",
		To:           "9e3feaf5f0483b2e196db31635734f627fdfd254",
		NHash:        to32(t, "983b89549335f096e7d35cb22f0beaf94991aa0837ecde14e32619b091c23e45"),
		GHash:        to32(t, "53e0c127dbc01d46b9b41e2698ecb0fed2f2c95d3ed5d55fcd7668543f095c6b"),
		GPubKey:      fromHex(t, "024c27e5610c701d857ff13464ea1592cf6e651bc6fde143f7d032b3298e7397e6"),
	}
}

func TestFixtureEncoding(t *testing.T) {
	typed, err := fixtureInput(t).Typed()
	require.NoError(t, err, "typed")

	assert.Equal(t, fixtureTypeHex, hex.EncodeToString(pack.EncodeType(typed.Type)), "type encoding")

	value, err := pack.EncodeValue(typed.Type, typed.Value)
	require.NoError(t, err, "value")
	assert.Equal(t, fixtureValueHex, hex.EncodeToString(value), "value encoding")

	buffer, err := pack.EncodeTyped(typed)
	require.NoError(t, err, "typed")
	assert.Equal(t, 520, len(buffer), "total length")
}

func TestFixtureHash(t *testing.T) {
	typed, err := fixtureInput(t).Typed()
	require.NoError(t, err, "typed")

	selector, err := transaction.ParseSelector("BTC/toEthereum")
	require.NoError(t, err, "selector")

	tx, err := transaction.New("1", selector, typed)
	require.NoError(t, err, "new")
	assert.Equal(t, fixtureHashHex, hex.EncodeToString(tx.Hash[:]), "hash")
	assert.Equal(t, "Dch8cmwnwL0QIUrSk2EhBQ3DY4cixzVp_AKYaaZ9Xvc", tx.Hash.String(), "text")
	assert.NoError(t, tx.Verify(), "verify")
}

func TestHashSensitivity(t *testing.T) {
	input := fixtureInput(t)
	input.Value = big.NewInt(10001)
	typed, err := input.Typed()
	require.NoError(t, err, "typed")

	hash, err := transaction.NewHash("1", "BTC/toEthereum", typed)
	require.NoError(t, err, "hash")
	assert.Equal(t, "59b908c39167c3b62b37695ca4983b067967cfb782fb284249d248b73068881e", hex.EncodeToString(hash[:]), "changed value")

	original, err := fixtureInput(t).Typed()
	require.NoError(t, err, "original")

	h1, err := transaction.NewHash("1", "BTC/toEthereum", original)
	require.NoError(t, err, "h1")
	h2, err := transaction.NewHash("2", "BTC/toEthereum", original)
	require.NoError(t, err, "h2")
	h3, err := transaction.NewHash("1", "BTC/fromEthereum", original)
	require.NoError(t, err, "h3")
	assert.NotEqual(t, h1, h2, "version")
	assert.NotEqual(t, h1, h3, "selector")
}

func TestHashStableOverReencoding(t *testing.T) {
	typed, err := fixtureInput(t).Typed()
	require.NoError(t, err, "typed")

	buffer, err := pack.EncodeTyped(typed)
	require.NoError(t, err, "encode")
	decoded, err := pack.DecodeTyped(buffer)
	require.NoError(t, err, "decode")

	h1, err := transaction.NewHash("1", "BTC/toEthereum", typed)
	require.NoError(t, err, "h1")
	h2, err := transaction.NewHash("1", "BTC/toEthereum", decoded)
	require.NoError(t, err, "h2")
	assert.Equal(t, h1, h2, "stable")
}

func TestTransactionJSON(t *testing.T) {
	typed, err := fixtureInput(t).Typed()
	require.NoError(t, err, "typed")
	tx, err := transaction.New(transaction.CurrentVersion, transaction.NewSelector("btc", transaction.Mint, "Ethereum"), typed)
	require.NoError(t, err, "new")

	buffer, err := json.Marshal(tx)
	require.NoError(t, err, "marshal")

	var decoded transaction.Transaction
	err = json.Unmarshal(buffer, &decoded)
	require.NoError(t, err, "unmarshal")
	assert.Equal(t, tx.Hash, decoded.Hash, "hash")
	assert.Equal(t, "BTC/toEthereum", decoded.Selector, "selector")
	assert.NoError(t, decoded.Verify(), "verify after JSON")

	decoded.Version = "2"
	assert.Equal(t, fault.ErrHashMismatch, decoded.Verify(), "tampered")
}

func TestSelectors(t *testing.T) {
	valid := []struct {
		s         string
		asset     string
		direction transaction.Direction
		host      string
	}{
		{"BTC/toEthereum", "BTC", transaction.Mint, "Ethereum"},
		{"BTC/fromEthereum", "BTC", transaction.Burn, "Ethereum"},
		{"ZEC/toBinanceSmartChain", "ZEC", transaction.Mint, "BinanceSmartChain"},
	}
	for i, item := range valid {
		s, err := transaction.ParseSelector(item.s)
		require.NoError(t, err, "%d: %q", i, item.s)
		assert.Equal(t, item.asset, s.Asset, "%d: asset", i)
		assert.Equal(t, item.direction, s.Direction, "%d: direction", i)
		assert.Equal(t, item.host, s.Host, "%d: host", i)
		assert.Equal(t, item.s, s.String(), "%d: string", i)
	}

	invalid := []string{"", "BTC", "BTC/", "btc/toEthereum", "BTC/to", "BTC/intoEthereum", "/toEthereum", "A/B/C"}
	for i, s := range invalid {
		_, err := transaction.ParseSelector(s)
		assert.Equal(t, fault.ErrInvalidSelector, err, "%d: %q", i, s)
	}
}

func TestBurnInput(t *testing.T) {
	input := transaction.BurnInput{
		Ref:    big.NewInt(42),
		To:     "mpx5kfFGd9DkJFiGqD4JfdjjBTbSMdD1a3",
		Amount: big.NewInt(50000),
	}
	typed, err := input.Typed()
	require.NoError(t, err, "typed")
	assert.True(t, typed.Type.Equal(transaction.BurnInputType), "type")

	input.Amount = big.NewInt(0)
	_, err = input.Typed()
	assert.Equal(t, fault.ErrInvalidAmount, err, "zero amount")
}

func TestHashText(t *testing.T) {
	var h transaction.Hash
	err := h.UnmarshalText([]byte("Dch8cmwnwL0QIUrSk2EhBQ3DY4cixzVp_AKYaaZ9Xvc"))
	require.NoError(t, err, "unmarshal")
	assert.Equal(t, fixtureHashHex, hex.EncodeToString(h[:]), "bytes")

	err = h.UnmarshalText([]byte("AAAA"))
	assert.Equal(t, fault.ErrInvalidHash, err, "short")
}

// TODO: pin publishedHashHex in TestFixtureHash once the layout that
// produces it is known
func TestPublishedHashText(t *testing.T) {
	var h transaction.Hash
	require.NoError(t, h.UnmarshalText([]byte(publishedHashText)), "unmarshal")
	assert.Equal(t, publishedHashHex, hex.EncodeToString(h[:]), "bytes")
	assert.Equal(t, publishedHashText, h.String(), "round trip")

	typed, err := fixtureInput(t).Typed()
	require.NoError(t, err, "typed")
	computed, err := transaction.NewHash("1", "BTC/toEthereum", typed)
	require.NoError(t, err, "hash")
	assert.NotEqual(t, h, computed, "layout now matches, update TestFixtureHash")
}

func TestStatusText(t *testing.T) {
	for _, name := range []string{"nil", "confirming", "pending", "executing", "reverted", "done"} {
		var status transaction.Status
		require.NoError(t, status.UnmarshalText([]byte(name)), "unmarshal: %s", name)
		assert.Equal(t, name, status.String(), "round trip")
	}

	var status transaction.Status
	assert.NoError(t, status.UnmarshalText(nil), "empty")
	assert.Equal(t, transaction.Unknown, status, "empty is unknown")

	assert.Error(t, status.UnmarshalText([]byte("finished")), "bad status")
	assert.True(t, transaction.Done.IsFinal(), "done")
	assert.True(t, transaction.Reverted.IsFinal(), "reverted")
	assert.False(t, transaction.Executing.IsFinal(), "executing")
}
