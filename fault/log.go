// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
)

// time allowed for the log file to be written before a panic
const panicDelay = 100 * time.Millisecond

// start up failures are logged here when a channel exists
var log *logger.L

// Initialise - open the PANIC log channel, call after logger.Initialise
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush and release the channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// PanicWithError - log then abort, for failures of fixed start up
// data such as ABI definitions
func PanicWithError(message string, err error) {
	s := fmt.Sprintf("%s failed with error: %s", message, err)
	if nil == log {
		fmt.Printf("*** %s\n", s)
	} else {
		log.Critical(s)
		log.Flush()
		time.Sleep(panicDelay)
	}
	panic(s)
}
