// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/util"
)

func TestCanonical(t *testing.T) {
	valid := map[string]string{
		"127.0.0.1:1234":    "127.0.0.1:1234",
		" 127.0.0.1:1 ":     "127.0.0.1:1",
		"0.0.0.0:65535":     "0.0.0.0:65535",
		"[::1]:1234":        "[::1]:1234",
		"[0:0::0:0]:1234":   "[::]:1234",
		"[0:0:0:0::1]:2009": "[::1]:2009",
	}
	for in, expected := range valid {
		c, err := util.CanonicalIPandPort(in)
		assert.NoError(t, err, "address: %q", in)
		assert.Equal(t, expected, c, "address: %q", in)
	}
}

func TestCanonicalInvalid(t *testing.T) {
	invalid := map[string]error{
		"localhost:1234":  fault.ErrInvalidIPAddress,
		"127.0.0.1":       fault.ErrInvalidIPAddress,
		"256.0.0.1:1234":  fault.ErrInvalidIPAddress,
		"*:1234":          fault.ErrInvalidIPAddress,
		"127.0.0.1:0":     fault.ErrInvalidPortNumber,
		"127.0.0.1:65536": fault.ErrInvalidPortNumber,
		"[::1]:port":      fault.ErrInvalidPortNumber,
	}
	for in, expected := range invalid {
		_, err := util.CanonicalIPandPort(in)
		assert.Equal(t, expected, err, "address: %q", in)
	}
}
