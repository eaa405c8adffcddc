// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

import "container/heap"

// Time is the simulated time, in arbitrary ticks.
//
type Time uint64

// MaxTime is the largest representable simulation time.
//
const MaxTime = ^Time(0)

type delayEvent struct {
	at  Time
	seq uint64
	p   *Proc
}

// delayQueue is a min-heap of delay events. Events firing at the same time
// are ordered by insertion.
//
type delayQueue struct {
	evs []delayEvent
	seq uint64
}

func (q *delayQueue) Len() int { return len(q.evs) }

func (q *delayQueue) Less(i, j int) bool {
	a, b := &q.evs[i], &q.evs[j]
	if a.at != b.at {
		return a.at < b.at
	}
	return a.seq < b.seq
}

func (q *delayQueue) Swap(i, j int) { q.evs[i], q.evs[j] = q.evs[j], q.evs[i] }

func (q *delayQueue) Push(x interface{}) { q.evs = append(q.evs, x.(delayEvent)) }

func (q *delayQueue) Pop() interface{} {
	n := len(q.evs) - 1
	e := q.evs[n]
	q.evs[n] = delayEvent{}
	q.evs = q.evs[:n]
	return e
}

func (q *delayQueue) schedule(at Time, p *Proc) {
	heap.Push(q, delayEvent{at: at, seq: q.seq, p: p})
	q.seq++
}

// peek returns the firing time of the earliest event. The queue must not be
// empty.
//
func (q *delayQueue) peek() Time {
	return q.evs[0].at
}

// popAt removes all events firing at time t and returns their processes in
// insertion order.
//
func (q *delayQueue) popAt(t Time, ps []*Proc) []*Proc {
	for len(q.evs) > 0 && q.evs[0].at == t {
		ps = append(ps, heap.Pop(q).(delayEvent).p)
	}
	return ps
}
