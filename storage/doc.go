// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk transfer store
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is a key range sharing one prefix byte, a write to several
// pools is made atomic with a Transaction.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++       = concatenation of byte data
// 3. id       = transfer id as UTF-8 bytes
// 4. created  = creation time as big endian unix nanoseconds (8 bytes)
//
// Transfers:
//
//   T ++ id              - transfer record
//                          data: msgpack encoded transfer
//   C ++ created ++ id   - creation order index
//                          data: id
//
// Other:
//
//   0x00 ++ VERSION      - database version
//                          data: big endian uint32 (4 bytes)
package storage
