// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ingest

import "go.uber.org/atomic"

// State is one of the loop's four lifecycle states.
type State int32

const (
	// Initializing holds from construction until the socket is bound.
	Initializing State = iota
	// Listening accepts datagrams.
	Listening
	// Draining accepts no new work but lets an in-flight transcode finish.
	Draining
	// Stopped is terminal.
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Listening:
		return "listening"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// stateBox is an atomically-readable State, observable by callers (tests,
// diagnostics) while the loop goroutine transitions it.
type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) set(s State) { b.v.Store(int32(s)) }

func (b *stateBox) get() State { return State(b.v.Load()) }
