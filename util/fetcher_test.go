// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/util"
)

func TestFetchJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			fmt.Fprint(w, `{"height":123}`)
		case "/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/garbage":
			fmt.Fprint(w, `<html>`)
		case "/echo":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"method":%q}`, r.Method)
		}
	}))
	defer server.Close()

	f := util.NewFetcher(server.Client(), 100, 1)
	ctx := context.Background()

	var reply struct {
		Height int    `json:"height"`
		Method string `json:"method"`
	}
	err := f.FetchJSON(ctx, server.URL+"/ok", &reply)
	assert.NoError(t, err, "ok")
	assert.Equal(t, 123, reply.Height, "height")

	err = f.FetchJSON(ctx, server.URL+"/busy", &reply)
	assert.True(t, fault.IsErrTransient(err), "busy: %v", err)

	err = f.FetchJSON(ctx, server.URL+"/missing", &reply)
	assert.True(t, fault.IsErrNotFound(err), "missing: %v", err)

	err = f.FetchJSON(ctx, server.URL+"/garbage", &reply)
	assert.ErrorIs(t, err, fault.ErrInvalidResponse, "garbage")

	err = f.PostJSON(ctx, server.URL+"/echo", map[string]string{}, &reply)
	assert.NoError(t, err, "post")
	assert.Equal(t, http.MethodPost, reply.Method, "method")

	err = util.FetchJSON(ctx, server.Client(), "http://127.0.0.1:1/unreachable", &reply)
	assert.True(t, fault.IsErrTransient(err), "unreachable: %v", err)
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var reply struct{}
	err := util.NewFetcher(server.Client(), 1, 1).FetchJSON(ctx, server.URL, &reply)
	assert.True(t, fault.IsErrTransient(err), "cancelled: %v", err)
}
