// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - network transactions and their identity
//
// A transaction is a version, a selector naming the operation
// (e.g. "BTC/toEthereum") and a packed input value.  Its hash is the
// SHA-256 of the length prefixed version, the length prefixed selector
// and the packed type and value of the input.
package transaction
