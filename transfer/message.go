// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

// Message - an external event delivered to a running transfer
type Message interface {
	message()
}

// Cancel - stop the transfer, it becomes errored
type Cancel struct {
	Reason string
}

// SourceSubmitted - the caller has sent the host chain burn
type SourceSubmitted struct {
	Hash string
}

func (Cancel) message()          {}
func (SourceSubmitted) message() {}
