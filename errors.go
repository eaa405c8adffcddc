// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

import "github.com/pkg/errors"

// Errors returned by the simulator. Use errors.Cause to test for them since
// they are usually wrapped with some context.
//
var (
	// ErrWidth is returned when a bit index falls outside the declared width
	// of a BitVector.
	ErrWidth = errors.New("bit index out of range")

	// ErrUnknownSignal is returned when a process waits on a signal that
	// does not belong to the running simulation.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrDuplicateSignal is returned by NewSignal when the name is already
	// in use.
	ErrDuplicateSignal = errors.New("duplicate signal name")

	// ErrProcessStalled is returned when a process runs for longer than the
	// stall timeout without reaching a wait primitive.
	ErrProcessStalled = errors.New("process stalled without reaching a wait point")

	// ErrProcessPanic is returned when a process panics.
	ErrProcessPanic = errors.New("process panicked")

	// ErrDeltaOverflow is returned when signals do not settle after the
	// maximum number of delta cycles in a single time step.
	ErrDeltaOverflow = errors.New("too many delta cycles")

	// ErrAlreadyRun is returned by Run when called more than once.
	ErrAlreadyRun = errors.New("simulation already run")

	// ErrNoProcess is returned by Run when called with no process.
	ErrNoProcess = errors.New("empty process list")
)
