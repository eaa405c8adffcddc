// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/desim"
	"github.com/pkg/errors"
)

// HalfAdder returns a half adder. All signals are 1 bit wide (only the lsb of
// inputs is used).
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(a, b, s, c *desim.Signal) desim.Process {
	checkSignals("HalfAdder", a, b, s, c)
	return comb("HalfAdder", func() {
		va, vb := a.Uint64()&1, b.Uint64()&1
		s.WriteUint(va ^ vb)
		c.WriteUint(va & vb)
	}, a, b)
}

// FullAdder returns a 3 bits adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(a, b, cin, s, cout *desim.Signal) desim.Process {
	checkSignals("FullAdder", a, b, cin, s, cout)
	return comb("FullAdder", func() {
		sum := a.Uint64()&1 + b.Uint64()&1 + cin.Uint64()&1
		s.WriteUint(sum & 1)
		cout.WriteUint(sum >> 1)
	}, a, b, cin)
}

// Adder returns a N-bits adder, N being the width of out. The carry signal is
// optional and may be nil.
//
//	Inputs: a[n], b[n]
//	Outputs: out[n], c
//	Function: out = lsb(a + b)
//	          c = carry out of bit n-1
//
func Adder(a, b, out, carry *desim.Signal) desim.Process {
	checkSignals("Adder", a, b, out)
	bits := out.Width()
	if bits == 0 {
		panic(errors.Wrap(desim.ErrWidth, "Adder: output signal must have a fixed width"))
	}
	checkWidth("Adder", bits, a, b)
	return comb("Adder", func() {
		va, vb := a.Read().Resize(bits).Uint64(), b.Read().Resize(bits).Uint64()
		sum := va + vb
		out.WriteUint(sum)
		if carry != nil {
			var c uint64
			if bits == desim.MaxWidth {
				if sum < va {
					c = 1
				}
			} else {
				c = sum >> bits & 1
			}
			carry.WriteUint(c)
		}
	}, a, b)
}
