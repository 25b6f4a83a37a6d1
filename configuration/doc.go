// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is a Lua chunk that returns a table, so most of base Lua is
// available: os.getenv for secrets supplied by the environment, string
// functions to build URLs and so on.  Caller variables are set as
// globals before the chunk runs.
package configuration
