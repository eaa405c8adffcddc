// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/desim"

// Mux returns a multiplexer. Only the lsb of sel is used.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(a, b, sel, out *desim.Signal) desim.Process {
	checkSignals("MUX", a, b, sel, out)
	return comb("MUX", func() {
		if sel.Uint64()&1 != 0 {
			out.Write(b.Read())
		} else {
			out.Write(a.Read())
		}
	}, a, b, sel)
}

// DMux returns a demultiplexer. Only the lsb of sel is used.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(in, sel, a, b *desim.Signal) desim.Process {
	checkSignals("DMUX", in, sel, a, b)
	return comb("DMUX", func() {
		if sel.Uint64()&1 != 0 {
			a.WriteUint(0)
			b.Write(in.Read())
		} else {
			a.Write(in.Read())
			b.WriteUint(0)
		}
	}, in, sel)
}
