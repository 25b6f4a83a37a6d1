// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway - deterministic derivation of deposit addresses
//
// The commitment hash (gHash) binds the payload, amount, token,
// recipient and nonce of a mint.  The gateway script pushes gHash,
// drops it, then behaves as pay-to-public-key-hash for the signing
// network's key, so funds sent to its P2SH address can only be spent
// by the network and only for this one commitment.
//
//   <gHash> OP_DROP OP_DUP OP_HASH160 <pubKeyHash> OP_EQUALVERIFY OP_CHECKSIG
//
// Addresses are recomputed from their inputs whenever needed and are
// never treated as a source of truth.
package gateway
