// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewayd/background"
)

type ticker struct {
	ticks    int64
	finished int32
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	step := args.(int64)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&state.ticks, step)
		}
	}
	atomic.StoreInt32(&state.finished, 1)
}

func TestStartStop(t *testing.T) {
	p1 := &ticker{}
	p2 := &ticker{}

	p := background.Start(background.Processes{p1, p2}, int64(3))
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&p1.finished), "first finished")
	assert.Equal(t, int32(1), atomic.LoadInt32(&p2.finished), "second finished")
	assert.NotZero(t, atomic.LoadInt64(&p1.ticks), "first ran")
	assert.Zero(t, atomic.LoadInt64(&p2.ticks)%3, "second step")

	// after stop nothing is still running
	n := atomic.LoadInt64(&p1.ticks)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, atomic.LoadInt64(&p1.ticks), "stopped")
}

func TestStopTwice(t *testing.T) {
	p := background.Start(background.Processes{&ticker{}}, int64(1))
	p.Stop()
	p.Stop()
}
