// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

import (
	"log"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Stats holds counters updated during a simulation run.
//
type Stats struct {
	TimeAdvances uint64 // number of times simulated time moved forward
	DeltaCycles  uint64 // total number of commit+run passes
	Commits      uint64 // number of signal value changes
	Resumes      uint64 // number of process resumptions
}

// CommitFn is a callback called by the simulation whenever a signal changes
// value.
//
type CommitFn func(t Time, sig *Signal, old, new BitVector)

// Simulation is a discrete event simulation. It owns signals and schedules
// processes.
//
// Within a given time step, the simulation alternates delta cycles made of a
// commit phase, where pending signal values become current and processes
// waiting on changed signals are made runnable, and a run phase, where
// runnable processes are resumed in FIFO order. Once no signal is pending and
// no process is runnable, time advances to the next delay event.
//
type Simulation struct {
	now     Time
	signals []*Signal
	byName  map[string]*Signal
	procs   []*Proc

	dirty []*Signal // signals with a pending value, in first write order
	flush []*Signal // signals being committed
	runq  []*Proc
	spare []*Proc
	q     delayQueue
	yield chan *Proc

	maxDeltas int
	stall     time.Duration
	watchdog  *time.Timer
	until     Time
	hasUntil  bool
	log       *log.Logger
	trace     bool
	onCommit  []CommitFn

	stats   Stats
	started bool
}

// New returns a new Simulation.
//
func New(opts ...Option) *Simulation {
	s := &Simulation{
		byName:    make(map[string]*Signal),
		yield:     make(chan *Proc),
		maxDeltas: DefaultMaxDeltas,
		stall:     DefaultStallTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewSignal creates a new signal with the given initial value. The width of
// the signal is the width of init. An empty name is replaced by an
// automatically generated one.
//
func (s *Simulation) NewSignal(name string, init BitVector) (*Signal, error) {
	id := len(s.signals)
	if name == "" {
		name = "sig" + strconv.Itoa(id)
	}
	if _, ok := s.byName[name]; ok {
		return nil, errors.Wrap(ErrDuplicateSignal, name)
	}
	sig := &Signal{name: name, id: id, s: s, cur: init, next: init}
	s.signals = append(s.signals, sig)
	s.byName[name] = sig
	return sig, nil
}

// MustSignal is like NewSignal but panics on error.
//
func (s *Simulation) MustSignal(name string, init BitVector) *Signal {
	sig, err := s.NewSignal(name, init)
	if err != nil {
		panic(err)
	}
	return sig
}

// Lookup returns the signal with the given name or nil if not found.
//
func (s *Simulation) Lookup(name string) *Signal {
	return s.byName[name]
}

// Signals returns all signals in creation order.
//
func (s *Simulation) Signals() []*Signal {
	return s.signals
}

// Procs returns the processes created by Run, in the order they were given.
//
func (s *Simulation) Procs() []*Proc {
	return s.procs
}

// Now returns the current simulation time.
//
func (s *Simulation) Now() Time { return s.now }

// Stats returns the simulation counters.
//
func (s *Simulation) Stats() Stats { return s.stats }

// OnCommit registers fn to be called on every signal value change. Signals
// written by fn are committed in the next delta cycle.
//
func (s *Simulation) OnCommit(fn CommitFn) {
	s.onCommit = append(s.onCommit, fn)
}

func (s *Simulation) tracef(format string, v ...interface{}) {
	if s.trace && s.log != nil {
		s.log.Printf("@%d "+format, append([]interface{}{s.now}, v...)...)
	}
}

// Run starts the given processes and runs the simulation until no event is
// left, that is when all processes are either Done or waiting on signals that
// no process can change anymore. This is a normal completion and Run returns
// nil.
//
// Processes run for the first time at time 0, in the given order.
//
// A Simulation can only be run once.
//
func (s *Simulation) Run(procs ...Process) error {
	if s.started {
		return ErrAlreadyRun
	}
	if len(procs) == 0 {
		return ErrNoProcess
	}
	s.started = true

	for _, pr := range procs {
		p := newProc(s, pr)
		s.procs = append(s.procs, p)
		s.runq = append(s.runq, p)
		go p.main()
	}
	defer s.teardown()

	for {
		if err := s.settle(); err != nil {
			if s.log != nil {
				s.log.Print(err)
			}
			return err
		}
		if s.q.Len() == 0 {
			return nil
		}
		t := s.q.peek()
		if s.hasUntil && t > s.until {
			return nil
		}
		if t > s.now {
			s.stats.TimeAdvances++
			s.now = t
			s.tracef("time advance")
		}
		s.runq = s.q.popAt(t, s.runq)
	}
}

// settle runs delta cycles until no signal is pending and no process is
// runnable.
//
func (s *Simulation) settle() error {
	for n := 0; len(s.dirty) > 0 || len(s.runq) > 0; n++ {
		if n >= s.maxDeltas {
			return errors.Wrapf(ErrDeltaOverflow, "signals not settled after %d delta cycles at time %d", n, s.now)
		}
		s.stats.DeltaCycles++
		s.commit()
		// processes do not wake each other while running, so runq is not
		// modified until the next commit.
		run := s.runq
		s.runq = s.spare[:0]
		for i, p := range run {
			run[i] = nil
			if err := s.resume(p); err != nil {
				return err
			}
		}
		s.spare = run[:0]
	}
	return nil
}

// commit commits all pending values. Writes made by OnCommit callbacks are
// committed in the next delta cycle.
//
func (s *Simulation) commit() {
	flush := s.dirty
	s.dirty = s.flush[:0]
	for i, sig := range flush {
		flush[i] = nil
		old, changed := sig.commit()
		if !changed {
			continue
		}
		s.stats.Commits++
		s.tracef("%s: %s -> %s", sig.name, old, sig.cur)
		for _, fn := range s.onCommit {
			fn(s.now, sig, old, sig.cur)
		}
		ws := sig.waiters
		sig.waiters = nil
		for _, p := range ws {
			s.wake(p, sig)
		}
	}
	s.flush = flush[:0]
}

// wake makes p runnable and removes it from the waiters of all other signals
// it was waiting on.
//
func (s *Simulation) wake(p *Proc, from *Signal) {
	for _, sig := range p.waitOn {
		if sig != from {
			sig.unsubscribe(p)
		}
	}
	for i := range p.waitOn {
		p.waitOn[i] = nil
	}
	p.waitOn = p.waitOn[:0]
	p.state = Runnable
	s.runq = append(s.runq, p)
}

func (s *Simulation) known(sig *Signal) bool {
	return sig != nil && sig.id < len(s.signals) && s.signals[sig.id] == sig
}

// resume hands control over to p and waits until it reaches a wait primitive
// or terminates.
//
func (s *Simulation) resume(p *Proc) error {
	s.stats.Resumes++
	p.resume <- struct{}{}

	if s.stall > 0 {
		if s.watchdog == nil {
			s.watchdog = time.NewTimer(s.stall)
		} else {
			s.watchdog.Reset(s.stall)
		}
		select {
		case <-s.yield:
			if !s.watchdog.Stop() {
				<-s.watchdog.C
			}
		case <-s.watchdog.C:
			p.stalled = true
			return errors.Wrapf(ErrProcessStalled, "process %s at time %d", p.name, s.now)
		}
	} else {
		<-s.yield
	}

	switch p.state {
	case Done:
		s.tracef("%s done", p.name)
		return p.err
	case WaitingOnTime:
		s.q.schedule(p.wakeAt, p)
	case WaitingOnSignals:
		for _, sig := range p.waitOn {
			if !s.known(sig) {
				name := "<nil>"
				if sig != nil {
					name = sig.name
				}
				return errors.Wrapf(ErrUnknownSignal, "process %s waiting on %s", p.name, name)
			}
		}
		// drop duplicates so that wake() unsubscribes once per signal
		ws := p.waitOn[:0]
	L:
		for _, sig := range p.waitOn {
			for _, w := range ws {
				if w == sig {
					continue L
				}
			}
			ws = append(ws, sig)
			sig.subscribe(p)
		}
		for i := len(ws); i < len(p.waitOn); i++ {
			p.waitOn[i] = nil
		}
		p.waitOn = ws
	}
	return nil
}

// teardown releases the goroutines of all processes that are not done.
// Stalled processes are left behind.
//
func (s *Simulation) teardown() {
	if s.watchdog != nil {
		s.watchdog.Stop()
	}
	for _, p := range s.procs {
		if p.state != Done && !p.stalled {
			close(p.resume)
		}
	}
	for _, p := range s.procs {
		if !p.stalled {
			<-p.exited
		}
	}
}
