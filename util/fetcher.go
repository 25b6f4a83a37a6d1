// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/gatewayd/fault"
)

// largest response body that will be read
const maximumResponseSize = 16 * 1024 * 1024

// Fetcher - JSON over HTTP with an optional request rate limit
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher - create a fetcher, a zero rate means unlimited
func NewFetcher(client *http.Client, requestsPerSecond float64, burst int) *Fetcher {
	if nil == client {
		client = http.DefaultClient
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// FetchJSON - GET a URL and decode the JSON response
func (f *Fetcher) FetchJSON(ctx context.Context, url string, reply interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if nil != err {
		return err
	}
	return f.do(request, reply)
}

// PostJSON - POST a JSON request and decode the JSON response
func (f *Fetcher) PostJSON(ctx context.Context, url string, body interface{}, reply interface{}) error {
	buffer, err := json.Marshal(body)
	if nil != err {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buffer))
	if nil != err {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	return f.do(request, reply)
}

func (f *Fetcher) do(request *http.Request, reply interface{}) error {
	if err := f.limiter.Wait(request.Context()); nil != err {
		return fmt.Errorf("rate limit: %s: %w", err, fault.ErrNetworkUnavailable)
	}

	response, err := f.client.Do(request)
	if nil != err {
		return fmt.Errorf("%s: %w", err, fault.ErrNetworkUnavailable)
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(io.LimitReader(response.Body, maximumResponseSize))
	if nil != err {
		return fmt.Errorf("read body: %s: %w", err, fault.ErrNetworkUnavailable)
	}

	switch {
	case http.StatusOK == response.StatusCode:
	case http.StatusNotFound == response.StatusCode:
		return fmt.Errorf("status: %d on: %q: %w", response.StatusCode, request.URL, fault.ErrTransactionNotFound)
	default:
		return fmt.Errorf("status: %d %q on: %q: %w", response.StatusCode, response.Status, request.URL, fault.ErrProviderStatus)
	}

	if err := json.Unmarshal(body, reply); nil != err {
		return fmt.Errorf("decode: %s: %w", err, fault.ErrInvalidResponse)
	}
	return nil
}

// FetchJSON - fetch a JSON response from an HTTP request and decode it
func FetchJSON(ctx context.Context, client *http.Client, url string, reply interface{}) error {
	return NewFetcher(client, 0, 1).FetchJSON(ctx, url, reply)
}
