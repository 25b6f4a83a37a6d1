// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/bitmark-inc/gatewayd/fault"
)

// State - stage of a transfer
type State int

// all states in the order a successful transfer passes through them
const (
	SourceInitiated      State = iota
	SourceSettling       State = iota
	SourceConfirmed      State = iota
	SubmittedToNetwork   State = iota
	DestinationInitiated State = iota
	DestinationSettling  State = iota
	Completed            State = iota
	Errored              State = iota
	Expired              State = iota
	Reverted             State = iota
)

var stateNames = [...]string{
	SourceInitiated:      "sourceInitiated",
	SourceSettling:       "sourceSettling",
	SourceConfirmed:      "sourceConfirmed",
	SubmittedToNetwork:   "submittedToNetwork",
	DestinationInitiated: "destinationInitiated",
	DestinationSettling:  "destinationSettling",
	Completed:            "completed",
	Errored:              "errored",
	Expired:              "expired",
	Reverted:             "reverted",
}

// String - name of the state
func (state State) String() string {
	if state < 0 || int(state) >= len(stateNames) {
		return "*unknown*"
	}
	return stateNames[state]
}

// IsValid - true for a defined state
func (state State) IsValid() bool {
	return state >= SourceInitiated && state <= Reverted
}

// IsTerminal - no further transitions are possible
func (state State) IsTerminal() bool {
	switch state {
	case Completed, Errored, Expired, Reverted:
		return true
	default:
		return false
	}
}

// MarshalText - convert state to text
func (state State) MarshalText() ([]byte, error) {
	if !state.IsValid() {
		return nil, fault.ErrInvalidState
	}
	return []byte(state.String()), nil
}

// UnmarshalText - convert text to state
func (state *State) UnmarshalText(s []byte) error {
	for i, name := range stateNames {
		if name == string(s) {
			*state = State(i)
			return nil
		}
	}
	return fault.ErrInvalidState
}

// Event - something that moves a transfer between states
type Event int

// events
const (
	DepositSeen          Event = iota // a qualifying deposit was found
	DepositConfirmed     Event = iota // it reached the required depth
	NetworkSubmitted     Event = iota // the network accepted the transaction
	ResponseReceived     Event = iota // the network finished executing it
	NetworkRejected      Event = iota // the network reverted it
	DestinationSubmitted Event = iota
	DestinationSettled   Event = iota
	Failed               Event = iota
	Cancelled            Event = iota
	Timeout              Event = iota
)

var eventNames = [...]string{
	DepositSeen:          "depositSeen",
	DepositConfirmed:     "depositConfirmed",
	NetworkSubmitted:     "networkSubmitted",
	ResponseReceived:     "responseReceived",
	NetworkRejected:      "networkRejected",
	DestinationSubmitted: "destinationSubmitted",
	DestinationSettled:   "destinationSettled",
	Failed:               "failed",
	Cancelled:            "cancelled",
	Timeout:              "timeout",
}

// String - name of the event
func (event Event) String() string {
	if event < 0 || int(event) >= len(eventNames) {
		return "*unknown*"
	}
	return eventNames[event]
}

// MarshalText - convert event to text
func (event Event) MarshalText() ([]byte, error) {
	if event < DepositSeen || event > Timeout {
		return nil, fault.ErrInvalidEvent
	}
	return []byte(event.String()), nil
}

// UnmarshalText - convert text to event
func (event *Event) UnmarshalText(s []byte) error {
	for i, name := range eventNames {
		if name == string(s) {
			*event = Event(i)
			return nil
		}
	}
	return fault.ErrInvalidEvent
}

// forward transitions, Failed, Cancelled and Timeout apply to
// every non-terminal state and are handled in Next
var transitions = map[State]map[Event]State{
	SourceInitiated: {
		DepositSeen: SourceSettling,
	},
	SourceSettling: {
		DepositConfirmed: SourceConfirmed,
	},
	SourceConfirmed: {
		NetworkSubmitted: SubmittedToNetwork,
		NetworkRejected:  Reverted,
	},
	SubmittedToNetwork: {
		ResponseReceived: DestinationInitiated,
		NetworkRejected:  Reverted,
	},
	DestinationInitiated: {
		DestinationSubmitted: DestinationSettling,
	},
	DestinationSettling: {
		DestinationSettled: Completed,
	},
}

// Next - the state reached by applying an event
func Next(state State, event Event) (State, error) {
	if !state.IsValid() {
		return state, fault.ErrInvalidState
	}
	if state.IsTerminal() {
		return state, fault.ErrTerminalTransfer
	}

	switch event {
	case Failed, Cancelled:
		return Errored, nil
	case Timeout:
		return Expired, nil
	}

	next, ok := transitions[state][event]
	if !ok {
		return state, fault.ErrInvalidEvent
	}
	return next, nil
}
