// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Client - the part of ethclient.Client that is used
type Client interface {
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Dial - connect to a host chain node
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if nil != err {
		return nil, fmt.Errorf("dial: %s: %w", err, fault.ErrNetworkUnavailable)
	}
	return client, nil
}

// the parts of the gateway contract that are used
const gatewayABIJSON = `[
  {
    "type": "event",
    "name": "LogBurn",
    "anonymous": false,
    "inputs": [
      {"name": "_to", "type": "bytes", "indexed": false},
      {"name": "_amount", "type": "uint256", "indexed": false},
      {"name": "_n", "type": "uint256", "indexed": true},
      {"name": "_indexedTo", "type": "bytes", "indexed": true}
    ]
  },
  {
    "type": "function",
    "name": "mint",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_pHash", "type": "bytes32"},
      {"name": "_amountUnderlying", "type": "uint256"},
      {"name": "_nHash", "type": "bytes32"},
      {"name": "_sig", "type": "bytes"}
    ],
    "outputs": [
      {"name": "", "type": "uint256"}
    ]
  }
]`

// GatewayABI - parsed at start up
var GatewayABI abi.ABI

// BurnTopic - first topic of every burn log
var BurnTopic common.Hash

func init() {
	a, err := abi.JSON(strings.NewReader(gatewayABIJSON))
	if nil != err {
		fault.PanicWithError("gateway abi", err)
	}
	GatewayABI = a
	BurnTopic = a.Events["LogBurn"].ID
}

// receipt of a transaction, nil if it is not mined yet
func receipt(ctx context.Context, client Client, hash common.Hash) (*types.Receipt, error) {
	r, err := client.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if nil != err {
		return nil, transient(err)
	}
	return r, nil
}

// depth of a mined receipt below the current tip
func confirmations(ctx context.Context, client Client, r *types.Receipt) (uint64, error) {
	tip, err := client.BlockNumber(ctx)
	if nil != err {
		return 0, transient(err)
	}
	if nil == r.BlockNumber || !r.BlockNumber.IsUint64() {
		return 0, fault.ErrInvalidResponse
	}
	block := r.BlockNumber.Uint64()
	if tip < block {
		return 0, nil
	}
	return tip - block + 1, nil
}

// node errors are retried, except for a cancelled context
func transient(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w", err, fault.ErrNetworkUnavailable)
}

// ParseHash - a 32 byte transaction hash in hex
func ParseHash(s string) (common.Hash, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if 66 != len(s) {
		return common.Hash{}, fault.ErrInvalidHash
	}
	for _, c := range s[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return common.Hash{}, fault.ErrInvalidHash
		}
	}
	return common.HexToHash(s), nil
}
