// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

import (
	"runtime"

	"github.com/pkg/errors"
)

// A ProcessFn is the body of a process. It runs until it calls one of the
// wait primitives of p (WaitOn or Delay), at which point control returns to
// the simulation. The process is Done when the function returns.
//
// A hardware process is usually an infinite loop around WaitOn:
//
//	func(p *desim.Proc) {
//		for {
//			p.WaitOn(in)
//			out.WriteUint(^in.Uint64())
//		}
//	}
//
// A ProcessFn must not retain p after returning nor share it with other
// goroutines.
//
type ProcessFn func(p *Proc)

// A Process is the blueprint of a process: a name and a body.
//
type Process struct {
	Name string
	Fn   ProcessFn
}

// NewProcess returns a new Process.
//
func NewProcess(name string, fn ProcessFn) Process {
	return Process{Name: name, Fn: fn}
}

// State is the scheduling state of a process.
//
type State int

// Process states.
//
const (
	Runnable State = iota
	WaitingOnSignals
	WaitingOnTime
	Done
)

var stateNames = [...]string{"Runnable", "WaitingOnSignals", "WaitingOnTime", "Done"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

// A Proc is a running instance of a Process.
//
// Each Proc runs on its own goroutine but only one of them, or the scheduler,
// runs at any given time. Control is handed over through channels.
//
type Proc struct {
	name  string
	s     *Simulation
	fn    ProcessFn
	state State

	waitOn []*Signal
	wakeAt Time
	err    error

	resume  chan struct{}
	exited  chan struct{}
	killed  bool
	stalled bool
}

func newProc(s *Simulation, p Process) *Proc {
	return &Proc{
		name:   p.Name,
		s:      s,
		fn:     p.Fn,
		state:  Runnable,
		resume: make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Name returns the process name.
//
func (p *Proc) Name() string { return p.name }

// State returns the process state.
//
func (p *Proc) State() State { return p.state }

// Sim returns the simulation running p.
//
func (p *Proc) Sim() *Simulation { return p.s }

// Now returns the current simulation time.
//
func (p *Proc) Now() Time { return p.s.now }

// WaitOn suspends the process until any of the given signals changes value.
// Waiting on no signal suspends the process forever.
//
// All signals must belong to the simulation running p, otherwise the
// simulation stops with ErrUnknownSignal.
//
func (p *Proc) WaitOn(sigs ...*Signal) {
	p.waitOn = append(p.waitOn[:0], sigs...)
	p.state = WaitingOnSignals
	p.yield()
}

// Delay suspends the process for d time units. The wake up time saturates at
// MaxTime.
//
func (p *Proc) Delay(d Time) {
	if d > MaxTime-p.s.now {
		d = MaxTime - p.s.now
	}
	p.wakeAt = p.s.now + d
	p.state = WaitingOnTime
	p.yield()
}

func (p *Proc) yield() {
	p.s.yield <- p
	if _, ok := <-p.resume; !ok {
		// simulation teardown
		p.killed = true
		runtime.Goexit()
	}
}

func (p *Proc) main() {
	defer close(p.exited)
	if _, ok := <-p.resume; !ok {
		return
	}
	defer func() {
		if p.killed {
			return
		}
		if r := recover(); r != nil {
			p.err = errors.Wrapf(ErrProcessPanic, "process %s: %v", p.name, r)
		}
		p.state = Done
		p.s.yield <- p
	}()
	p.fn(p)
}
