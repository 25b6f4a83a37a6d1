// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error to allow easy comparison
// without having to resort to partial string matches.  Errors are
// grouped into classes so callers can decide whether to retry
// (TransientError), give up (the validation classes) or treat the
// transfer as reverted (RejectedError).
package fault
