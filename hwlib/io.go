// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/desim"
)

// Input creates a function based input. It writes f(i) to sig, then waits for
// period time units, n times. It terminates after the last wait.
//
//	Outputs: sig
//	Function: sig(i*period) = f(i)
//
func Input(name string, sig *desim.Signal, period desim.Time, n int, f func(i int) uint64) desim.Process {
	checkSignals(name, sig)
	return desim.NewProcess(name, func(p *desim.Proc) {
		for i := 0; i < n; i++ {
			sig.WriteUint(f(i))
			p.Delay(period)
		}
	})
}

// Stimulus returns an Input that drives sig with the given values.
//
func Stimulus(name string, sig *desim.Signal, period desim.Time, values ...uint64) desim.Process {
	return Input(name, sig, period, len(values), func(i int) uint64 { return values[i] })
}

// Output creates an output or probe. The fn function is called with the
// current time and the committed values of sigs every time one of them
// changes.
//
//	Inputs: sigs...
//	Function: fn(t, sigs...)
//
func Output(name string, fn func(t desim.Time, vs []desim.BitVector), sigs ...*desim.Signal) desim.Process {
	checkSignals(name, sigs...)
	return desim.NewProcess(name, func(p *desim.Proc) {
		vs := make([]desim.BitVector, len(sigs))
		for {
			p.WaitOn(sigs...)
			for i, s := range sigs {
				vs[i] = s.Read()
			}
			fn(p.Now(), vs)
		}
	})
}
