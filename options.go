// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

import (
	"log"
	"time"
)

// Default option values.
//
const (
	DefaultMaxDeltas    = 1000
	DefaultStallTimeout = 10 * time.Second
)

// An Option configures a Simulation.
//
type Option func(s *Simulation)

// WithMaxDeltas sets the maximum number of delta cycles allowed in a single
// time step before the simulation fails with ErrDeltaOverflow. This catches
// combinational loops that never settle. A value <= 0 selects
// DefaultMaxDeltas.
//
func WithMaxDeltas(n int) Option {
	return func(s *Simulation) {
		if n <= 0 {
			n = DefaultMaxDeltas
		}
		s.maxDeltas = n
	}
}

// WithStallTimeout sets the wall clock time a process is allowed to run
// without reaching a wait primitive. When exceeded, the simulation fails with
// ErrProcessStalled.
//
// A stalled process cannot be stopped: its goroutine is leaked. A timeout of
// 0 disables the check, in which case a stalled process hangs the simulation.
//
func WithStallTimeout(d time.Duration) Option {
	return func(s *Simulation) { s.stall = d }
}

// WithUntil stops the simulation before advancing time past t.
//
func WithUntil(t Time) Option {
	return func(s *Simulation) {
		s.until = t
		s.hasUntil = true
	}
}

// WithLogger sets the logger used by the simulation. By default, nothing is
// logged.
//
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithTrace enables logging of every value change and time advance. It has no
// effect without WithLogger.
//
func WithTrace(trace bool) Option {
	return func(s *Simulation) { s.trace = trace }
}
