// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/currency"
	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/evm"
	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/gateway"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/transfer"
	"github.com/bitmark-inc/gatewayd/util"
	"github.com/bitmark-inc/gatewayd/utxo"
)

// one configured host chain
type host struct {
	client        evm.Client
	key           *ecdsa.PrivateKey
	confirmations uint64
	gateways      map[currency.Currency]common.Address
	minters       map[currency.Currency]*evm.Minter
	burns         map[currency.Currency]*evm.Burns
}

// resolver - builds the chains serving a transfer from the
// configuration, every chain is created once and then shared
type resolver struct {
	sync.Mutex

	log       *logger.L
	network   chain.Network
	publicKey []byte
	fetcher   *util.Fetcher
	assets    map[string]AssetType
	hosts     map[string]*host
	utxos     map[currency.Currency]*utxo.Chain
	sources   map[currency.Currency]*datasource.Source
}

func newResolver(ctx context.Context, configuration *Configuration, fetcher *util.Fetcher) (*resolver, error) {
	r := &resolver{
		log:       logger.New("resolver"),
		network:   configuration.network,
		publicKey: configuration.publicKey,
		fetcher:   fetcher,
		assets:    configuration.Assets,
		hosts:     make(map[string]*host),
		utxos:     make(map[currency.Currency]*utxo.Chain),
		sources:   make(map[currency.Currency]*datasource.Source),
	}

	for name, h := range configuration.Hosts {
		client, err := evm.Dial(ctx, h.URL)
		if nil != err {
			return nil, err
		}
		entry, err := newHost(client, h)
		if nil != err {
			return nil, fmt.Errorf("host: %q  error: %w", name, err)
		}
		r.hosts[name] = entry
	}
	return r, nil
}

func newHost(client evm.Client, configuration HostType) (*host, error) {
	h := &host{
		client:        client,
		confirmations: configuration.Confirmations,
		gateways:      make(map[currency.Currency]common.Address),
		minters:       make(map[currency.Currency]*evm.Minter),
		burns:         make(map[currency.Currency]*evm.Burns),
	}
	if "" != configuration.PrivateKey {
		key, err := evm.LoadKey(configuration.PrivateKey)
		if nil != err {
			return nil, err
		}
		h.key = key
	}
	for symbol, contract := range configuration.Gateways {
		asset, err := currency.FromString(symbol)
		if nil != err {
			return nil, err
		}
		address, err := gateway.ParseHostAddress(contract)
		if nil != err {
			return nil, err
		}
		h.gateways[asset] = address
	}
	return h, nil
}

// Resolve - transfer.Resolver
func (r *resolver) Resolve(t *transfer.Transfer) (transfer.Chains, error) {
	if r.network != t.Network {
		return transfer.Chains{}, fault.ErrUnsupportedNetwork
	}

	r.Lock()
	defer r.Unlock()

	h, ok := r.hosts[t.Host]
	if !ok {
		return transfer.Chains{}, fault.ErrUnsupportedHost
	}
	contract, ok := h.gateways[t.Asset]
	if !ok {
		return transfer.Chains{}, fault.ErrInvalidAsset
	}

	switch t.Direction {
	case transaction.Mint:
		c, err := r.utxoChain(t.Asset)
		if nil != err {
			return transfer.Chains{}, err
		}
		m, err := h.minter(t.Asset, contract)
		if nil != err {
			return transfer.Chains{}, err
		}
		return transfer.Chains{
			Source:      c,
			Builder:     c,
			Destination: m,
		}, nil

	case transaction.Burn:
		b, err := h.burner(t.Asset, contract, r.network)
		if nil != err {
			return transfer.Chains{}, err
		}
		return transfer.Chains{
			Source:      b,
			Builder:     b,
			Destination: transfer.NetworkRelease{},
		}, nil

	default:
		return transfer.Chains{}, fault.ErrInvalidDirection
	}
}

// lock must be held
func (h *host) minter(asset currency.Currency, contract common.Address) (*evm.Minter, error) {
	if m, ok := h.minters[asset]; ok {
		return m, nil
	}
	if nil == h.key {
		return nil, fault.ErrMissingPrivateKey
	}
	m, err := evm.NewMinter(h.client, contract, h.key, h.confirmations)
	if nil != err {
		return nil, err
	}
	h.minters[asset] = m
	return m, nil
}

// lock must be held
func (h *host) burner(asset currency.Currency, contract common.Address, network chain.Network) (*evm.Burns, error) {
	if b, ok := h.burns[asset]; ok {
		return b, nil
	}
	b, err := evm.NewBurns(h.client, contract, network, h.confirmations)
	if nil != err {
		return nil, err
	}
	h.burns[asset] = b
	return b, nil
}

// the lock side of mints for an asset
func (r *resolver) chain(asset currency.Currency) (*utxo.Chain, error) {
	r.Lock()
	defer r.Unlock()
	return r.utxoChain(asset)
}

// lock must be held
func (r *resolver) utxoChain(asset currency.Currency) (*utxo.Chain, error) {
	if c, ok := r.utxos[asset]; ok {
		return c, nil
	}
	source, err := r.source(asset)
	if nil != err {
		return nil, err
	}
	c, err := utxo.New(asset, r.network, r.publicKey, source, r.assets[asset.String()].Confirmations)
	if nil != err {
		return nil, err
	}
	r.utxos[asset] = c
	return c, nil
}

// deposit source for an asset, lock must be held
//
// the public explorers are used unless providers are configured,
// setting defaults keeps them as well
func (r *resolver) source(asset currency.Currency) (*datasource.Source, error) {
	if s, ok := r.sources[asset]; ok {
		return s, nil
	}

	configured := r.assets[asset.String()]
	entries := make([]datasource.Entry, 0, len(configured.Providers)+3)

	if 0 == len(configured.Providers) || configured.Defaults {
		defaults, err := datasource.DefaultProviders(asset, r.network, r.fetcher)
		if nil != err {
			return nil, err
		}
		entries = append(entries, defaults...)
	}

	for _, p := range configured.Providers {
		var provider datasource.Provider
		switch p.Kind {
		case "esplora":
			name := p.Name
			if "" == name {
				name = "esplora"
			}
			provider = datasource.NewEsplora(name, p.URL, r.fetcher)
		case "blockchair":
			provider = datasource.NewBlockchair(p.URL, p.Network, r.fetcher)
		case "sochain":
			provider = datasource.NewSoChain(p.URL, p.Network, r.fetcher)
		default:
			return nil, fmt.Errorf("provider kind: %q: %w", p.Kind, fault.ErrInvalidConfiguration)
		}
		entries = append(entries, datasource.Entry{
			Provider: provider,
			Priority: p.Priority,
			Timeout:  seconds(p.Timeout),
		})
	}

	s, err := datasource.New(entries...)
	if nil != err {
		return nil, err
	}
	r.log.Infof("%s providers: %v", asset, s.Providers())
	r.sources[asset] = s
	return s, nil
}

// deposits paying any address, for the deposits command
func (r *resolver) findDeposits(ctx context.Context, asset currency.Currency, address string, minConfirmations uint64) ([]datasource.Deposit, error) {
	r.Lock()
	s, err := r.source(asset)
	r.Unlock()
	if nil != err {
		return nil, err
	}
	return s.FindDeposits(ctx, address, minConfirmations)
}

// shared HTTP fetcher for explorers and the lightnode
func newFetcher(configuration *Configuration) *util.Fetcher {
	client := &http.Client{
		Timeout: transfer.DefaultCallTimeout,
	}
	return util.NewFetcher(client, configuration.Lightnode.RequestsPerSecond, configuration.Lightnode.Burst)
}
