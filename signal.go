// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

// A Signal is a storage cell shared by processes. It holds a committed value,
// returned by Read, and a pending value set by Write. Pending values only
// become visible when the simulation commits them at the end of the current
// delta cycle.
//
// Signals are not safe for concurrent use outside of the processes of the
// Simulation that created them.
//
type Signal struct {
	name    string
	id      int
	s       *Simulation
	cur     BitVector
	next    BitVector
	pending bool
	waiters []*Proc
}

// Name returns the signal name.
//
func (s *Signal) Name() string { return s.name }

// Sim returns the simulation the signal belongs to.
//
func (s *Signal) Sim() *Simulation { return s.s }

// ID returns the signal id, unique within its simulation.
//
func (s *Signal) ID() int { return s.id }

// Width returns the signal width. Zero means unbounded.
//
func (s *Signal) Width() uint { return s.cur.w }

// Read returns the committed value of the signal.
//
func (s *Signal) Read() BitVector { return s.cur }

// Uint64 returns the committed value of the signal as an uint64.
//
func (s *Signal) Uint64() uint64 { return s.cur.v }

// Next returns the pending value of the signal if a write occurred during the
// current delta cycle, or its committed value otherwise.
//
func (s *Signal) Next() BitVector {
	if s.pending {
		return s.next
	}
	return s.cur
}

// Write schedules v as the next value of the signal. The value is wrapped to
// the width of the signal. Multiple writes in the same delta cycle overwrite
// each other.
//
// A signal must only be written by processes of the simulation it belongs to,
// or before that simulation is run. Values written before Run are committed in
// the first delta cycle at time 0.
//
func (s *Signal) Write(v BitVector) {
	s.WriteUint(v.v)
}

// WriteUint is like Write but takes a plain integer.
//
func (s *Signal) WriteUint(v uint64) {
	s.next = Bits(v, s.cur.w)
	if !s.pending {
		s.pending = true
		s.s.dirty = append(s.s.dirty, s)
	}
}

// WriteBit sets bit i of the pending value.
//
func (s *Signal) WriteBit(i uint, bit uint) error {
	v, err := s.Next().SetBit(i, bit)
	if err != nil {
		return err
	}
	s.Write(v)
	return nil
}

// commit makes the pending value current and returns true if the value
// changed.
//
func (s *Signal) commit() (old BitVector, changed bool) {
	old = s.cur
	s.cur, s.pending = s.next, false
	return old, old.v != s.cur.v
}

func (s *Signal) subscribe(p *Proc) {
	s.waiters = append(s.waiters, p)
}

func (s *Signal) unsubscribe(p *Proc) {
	for i, w := range s.waiters {
		if w == p {
			copy(s.waiters[i:], s.waiters[i+1:])
			s.waiters[len(s.waiters)-1] = nil
			s.waiters = s.waiters[:len(s.waiters)-1]
			return
		}
	}
}
