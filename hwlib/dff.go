// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/desim"

// Clock returns a clock generator. clk starts low, toggles every half time
// units and stops after the given number of full cycles. If cycles <= 0, the
// clock never stops and the simulation must be bounded with desim.WithUntil.
//
//	Outputs: clk
//	Function: clk(t) = (t / half) & 1
//
func Clock(clk *desim.Signal, half desim.Time, cycles int) desim.Process {
	checkSignals("Clock", clk)
	if half == 0 {
		half = 1
	}
	return desim.NewProcess("Clock", func(p *desim.Proc) {
		clk.WriteUint(0)
		for i := 0; cycles <= 0 || i < cycles; i++ {
			p.Delay(half)
			clk.WriteUint(1)
			p.Delay(half)
			clk.WriteUint(0)
		}
	})
}

// DFF returns a positive edge triggered data flip flop. q only changes on
// rising edges of the lsb of clk.
//
//	Inputs: clk, d
//	Outputs: q
//	Function: q(t) = d(t-1) // where t is the current clock cycle.
//
func DFF(clk, d, q *desim.Signal) desim.Process {
	checkSignals("DFF", clk, d, q)
	return desim.NewProcess("DFF", func(p *desim.Proc) {
		prev := clk.Uint64() & 1
		for {
			p.WaitOn(clk)
			cur := clk.Uint64() & 1
			if prev == 0 && cur == 1 {
				q.Write(d.Read())
			}
			prev = cur
		}
	})
}
