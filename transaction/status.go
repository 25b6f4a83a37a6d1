// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/gatewayd/fault"
)

// Status - progress of a transaction inside the network
type Status int

// possible statuses, Unknown is also used for "not found"
const (
	Unknown    Status = iota
	Confirming Status = iota
	Pending    Status = iota
	Executing  Status = iota
	Reverted   Status = iota
	Done       Status = iota
)

var statusNames = map[Status]string{
	Unknown:    "nil",
	Confirming: "confirming",
	Pending:    "pending",
	Executing:  "executing",
	Reverted:   "reverted",
	Done:       "done",
}

// String - the network's name for the status
func (status Status) String() string {
	if s, ok := statusNames[status]; ok {
		return s
	}
	return "*unknown*"
}

// IsFinal - true for done and reverted
func (status Status) IsFinal() bool {
	return Done == status || Reverted == status
}

// MarshalText - convert status to text
func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

// UnmarshalText - convert text to status, an empty string is Unknown
func (status *Status) UnmarshalText(s []byte) error {
	if 0 == len(s) {
		*status = Unknown
		return nil
	}
	for k, v := range statusNames {
		if v == string(s) {
			*status = k
			return nil
		}
	}
	return fault.ErrMalformedResponse
}
