// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package datasource - deposit lookup over several block explorers
//
// A Source asks its providers in priority order and returns the first
// non-empty answer.  A failing provider is logged and skipped.  Only
// when every provider fails is the lookup an error.  There is no retry
// inside a Source, callers poll at their own interval.
package datasource
