// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"context"

	"github.com/bitmark-inc/gatewayd/chain"
	"github.com/bitmark-inc/gatewayd/datasource"
	"github.com/bitmark-inc/gatewayd/transaction"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks
//go:generate mockgen -source=manager.go -destination=mocks/store.go -package=mocks

// SourceChain - where a transfer's value is locked or burned
type SourceChain interface {
	// all deposits currently visible for the transfer
	Deposits(ctx context.Context, t *Transfer) ([]datasource.Deposit, error)

	// depth a deposit must reach before submission
	RequiredConfirmations(network chain.Network) (uint64, error)
}

// InputBuilder - creates the network transaction for a confirmed deposit
type InputBuilder interface {
	Build(ctx context.Context, t *Transfer, deposit datasource.Deposit) (*transaction.Transaction, error)
}

// DestinationChain - where the network's response is finalised
type DestinationChain interface {
	// returns the destination transaction reference
	Submit(ctx context.Context, t *Transfer, response *transaction.Transaction) (string, error)

	// true once the reference is final
	Settled(ctx context.Context, t *Transfer, reference string) (bool, error)
}

// Network - the signing network's RPC surface
type Network interface {
	SubmitTransaction(ctx context.Context, tx *transaction.Transaction) error

	// an unknown transaction is reported as transaction.Unknown
	QueryTransaction(ctx context.Context, hash transaction.Hash) (*transaction.Transaction, transaction.Status, error)
}

// Observer - told of every change and failed poll
//
// called from the machine's goroutine with a copy of the transfer
type Observer interface {
	Transitioned(t *Transfer, tr Transition)
	Updated(t *Transfer)
	PollFailed(t *Transfer, err error)
}

// Chains - the capabilities serving one transfer
type Chains struct {
	Source      SourceChain
	Builder     InputBuilder
	Destination DestinationChain
}

// Resolver - selects the capabilities for a transfer
type Resolver interface {
	Resolve(t *Transfer) (Chains, error)
}
