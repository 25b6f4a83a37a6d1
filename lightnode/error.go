// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightnode

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/gatewayd/fault"
)

// Error - an error object returned by the RPC server
//
// classified as fault.ErrRPCFailed
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error: %d: %s", e.Code, e.Message)
}

// Unwrap - so that fault.IsErrProcess holds
func (e *Error) Unwrap() error {
	return fault.ErrRPCFailed
}

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}
