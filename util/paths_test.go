// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/gatewayd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/keys/publish.private", util.EnsureAbsolute("/data/", "./keys/../keys/publish.private"), "cleaned")
}

func TestMakeDirectories(t *testing.T) {
	base := t.TempDir()
	a := filepath.Join(base, "data")
	b := filepath.Join(base, "log", "old")

	require.NoError(t, util.MakeDirectories(a, b), "make")
	assert.True(t, util.EnsureFileExists(a), "data")
	assert.True(t, util.EnsureFileExists(b), "log")
	assert.NoError(t, util.MakeDirectories(a), "already exists")

	file := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600), "write")
	assert.Error(t, util.MakeDirectories(filepath.Join(file, "sub")), "under a file")
	assert.False(t, util.EnsureFileExists(filepath.Join(base, "missing")), "missing")
}
