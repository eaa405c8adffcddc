// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package desim provides a discrete event simulator for hardware designs, using
Go functions as a hardware description language.

A design is made of Signals and Processes. Signals hold a committed value and
a pending one: processes read the committed value and write the pending one,
which only becomes visible once the simulation commits it. Processes are
plain Go functions that suspend themselves by waiting on a set of signals
(a sensitivity list) or for some amount of simulated time:

	sim := desim.New()
	b := sim.MustSignal("b", desim.Bits(0, 4))
	g := sim.MustSignal("g", desim.Bits(0, 4))

	enc := desim.NewProcess("bin2gray", func(p *desim.Proc) {
		for {
			p.WaitOn(b)
			v := b.Uint64()
			g.WriteUint(v ^ v>>1)
		}
	})
	tb := desim.NewProcess("stimulus", func(p *desim.Proc) {
		for i := uint64(0); i < 16; i++ {
			b.WriteUint(i)
			p.Delay(10)
			fmt.Printf("input: %s | output: %s\n", b.Read(), g.Read())
		}
	})
	if err := sim.Run(enc, tb); err != nil {
		log.Fatal(err)
	}

Scheduling

The simulation runs every process until it suspends, then commits all pending
signal values. Processes waiting on a signal whose value actually changed are
resumed, in the order they started waiting, within the same time step. This
commit+run sequence, a delta cycle, repeats until no signal changes anymore.
Time then advances to the earliest delay event. Delay events firing at the
same time are processed in the order they were scheduled. The simulation ends
when no process is runnable and no delay event is left.

Only one process runs at any given time. Processes are backed by goroutines
and must not start other goroutines that touch signals. Signals belong to the
simulation that created them: processes must not write signals of another
simulation.

Known risk: a process looping forever without reaching a wait point cannot be
preempted. The simulation detects it after the stall timeout (see
WithStallTimeout) and returns ErrProcessStalled, but the process goroutine is
leaked.
*/
package desim
