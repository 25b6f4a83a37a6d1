// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightnode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transaction"
	"github.com/bitmark-inc/gatewayd/util"
)

// RPC method names
const (
	MethodSubmitTx = "ren_submitTx"
	MethodQueryTx  = "ren_queryTx"
)

// default endpoints of the public gateways
var endpoints = map[string]string{
	"mainnet": "https://lightnode-mainnet.herokuapp.com",
	"testnet": "https://lightnode-testnet.herokuapp.com",
	"regtest": "http://127.0.0.1:18515",
}

// Endpoint - the default RPC URL of a network
func Endpoint(network string) (string, error) {
	url, ok := endpoints[network]
	if !ok {
		return "", fault.ErrUnsupportedNetwork
	}
	return url, nil
}

// Client - JSON-RPC 2.0 over HTTP to a gateway node of the network
type Client struct {
	log     *logger.L
	url     string
	fetcher *util.Fetcher
	id      uint64
}

type request struct {
	Version string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type reply struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// submitted transactions never carry an output
type submitTx struct {
	Hash     transaction.Hash `json:"hash"`
	Version  string           `json:"version"`
	Selector string           `json:"selector"`
	In       interface{}      `json:"in"`
}

type submitParams struct {
	Tx submitTx `json:"tx"`
}

type queryParams struct {
	TxHash transaction.Hash `json:"txHash"`
}

type queryResult struct {
	Tx       transaction.Transaction `json:"tx"`
	TxStatus transaction.Status      `json:"txStatus"`
}

// New - client for an RPC URL
func New(url string, fetcher *util.Fetcher) *Client {
	if nil == fetcher {
		fetcher = util.NewFetcher(nil, 0, 1)
	}
	return &Client{
		log:     logger.New("lightnode"),
		url:     strings.TrimRight(url, "/"),
		fetcher: fetcher,
	}
}

// SubmitTransaction - send a transaction to the network
//
// sending a transaction that the network already has is not an error
func (c *Client) SubmitTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if nil == tx {
		return fault.ErrInvalidTransfer
	}
	params := submitParams{
		Tx: submitTx{
			Hash:     tx.Hash,
			Version:  tx.Version,
			Selector: tx.Selector,
			In:       tx.In,
		},
	}
	err := c.call(ctx, MethodSubmitTx, params, nil)
	if nil != err {
		var e *Error
		if asError(err, &e) && strings.Contains(strings.ToLower(e.Message), "already") {
			c.log.Debugf("submit: %s  already known", tx.Hash)
			return nil
		}
		return err
	}
	c.log.Debugf("submit: %s  selector: %s", tx.Hash, tx.Selector)
	return nil
}

// QueryTransaction - fetch a transaction and its status
//
// a transaction the network has not seen yet is pending
func (c *Client) QueryTransaction(ctx context.Context, hash transaction.Hash) (*transaction.Transaction, transaction.Status, error) {
	var result queryResult
	err := c.call(ctx, MethodQueryTx, queryParams{TxHash: hash}, &result)
	if nil != err {
		var e *Error
		if asError(err, &e) && strings.Contains(strings.ToLower(e.Message), "not found") {
			c.log.Tracef("query: %s  not found", hash)
			return nil, transaction.Pending, nil
		}
		return nil, transaction.Unknown, err
	}

	c.log.Debugf("query: %s  status: %s", hash, result.TxStatus)
	return &result.Tx, result.TxStatus, nil
}

func (c *Client) call(ctx context.Context, method string, params interface{}, result interface{}) error {
	id := atomic.AddUint64(&c.id, 1)
	req := request{
		Version: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}

	var r reply
	if err := c.fetcher.PostJSON(ctx, c.url, req, &r); nil != err {
		c.log.Warnf("%s: id: %d  error: %s", method, id, err)
		// a body that is not JSON-RPC is not worth asking for again
		if errors.Is(err, fault.ErrInvalidResponse) {
			return fmt.Errorf("%s: %s: %w", method, err, fault.ErrMalformedResponse)
		}
		return err
	}
	if nil != r.Error {
		c.log.Debugf("%s: id: %d  rpc error: %d %s", method, id, r.Error.Code, r.Error.Message)
		return &Error{Code: r.Error.Code, Message: r.Error.Message}
	}
	if id != r.ID {
		return fmt.Errorf("%s: reply id: %d  expected: %d: %w", method, r.ID, id, fault.ErrMalformedResponse)
	}
	if nil == result {
		return nil
	}
	if 0 == len(r.Result) || "null" == string(r.Result) {
		return fmt.Errorf("%s: empty result: %w", method, fault.ErrMalformedResponse)
	}
	if err := json.Unmarshal(r.Result, result); nil != err {
		c.log.Errorf("%s: id: %d  decode: %s", method, id, err)
		return fmt.Errorf("%s: decode: %s: %w", method, err, fault.ErrMalformedResponse)
	}
	return nil
}
