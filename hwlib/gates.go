// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for desim.
//
// Parts are desim.Process values built around the signals they connect to.
// Combinational parts evaluate their outputs once when the simulation starts,
// then every time one of their inputs changes. Unless stated otherwise, all
// operations are bitwise and outputs are truncated to the width of the output
// signal.
//
// Part constructors panic if given nil signals or signals of incompatible
// widths.
//
package hwlib

import (
	"github.com/db47h/desim"
	"github.com/pkg/errors"
)

func checkSignals(name string, sigs ...*desim.Signal) {
	for i, s := range sigs {
		if s == nil {
			panic(errors.Errorf("%s: nil signal #%d", name, i))
		}
	}
}

// checkWidth panics if s is narrower than width bits.
//
func checkWidth(name string, width uint, sigs ...*desim.Signal) {
	for _, s := range sigs {
		if w := s.Width(); w != 0 && w < width {
			panic(errors.Wrapf(desim.ErrWidth, "%s: signal %s is %d bits wide, need %d", name, s.Name(), w, width))
		}
	}
}

// comb returns a combinational process that calls eval once, then every time
// one of the inputs changes.
//
func comb(name string, eval func(), inputs ...*desim.Signal) desim.Process {
	return desim.NewProcess(name, func(p *desim.Proc) {
		for {
			eval()
			p.WaitOn(inputs...)
		}
	})
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = ^in
//
func Not(in, out *desim.Signal) desim.Process {
	checkSignals("NOT", in, out)
	return comb("NOT", func() { out.WriteUint(^in.Uint64()) }, in)
}

// Gate returns a custom two inputs gate. fn is called with the committed
// values of a and b.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = fn(a, b)
//
func Gate(name string, a, b, out *desim.Signal, fn func(a, b uint64) uint64) desim.Process {
	checkSignals(name, a, b, out)
	return comb(name, func() { out.WriteUint(fn(a.Uint64(), b.Uint64())) }, a, b)
}

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a & b
//
func And(a, b, out *desim.Signal) desim.Process {
	return Gate("AND", a, b, out, func(a, b uint64) uint64 { return a & b })
}

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ^(a & b)
//
func Nand(a, b, out *desim.Signal) desim.Process {
	return Gate("NAND", a, b, out, func(a, b uint64) uint64 { return ^(a & b) })
}

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a | b
//
func Or(a, b, out *desim.Signal) desim.Process {
	return Gate("OR", a, b, out, func(a, b uint64) uint64 { return a | b })
}

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ^(a | b)
//
func Nor(a, b, out *desim.Signal) desim.Process {
	return Gate("NOR", a, b, out, func(a, b uint64) uint64 { return ^(a | b) })
}

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a ^ b
//
func Xor(a, b, out *desim.Signal) desim.Process {
	return Gate("XOR", a, b, out, func(a, b uint64) uint64 { return a ^ b })
}

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ^(a ^ b)
//
func Xnor(a, b, out *desim.Signal) desim.Process {
	return Gate("XNOR", a, b, out, func(a, b uint64) uint64 { return ^(a ^ b) })
}

// OrReduce returns a N-Way OR gate, N being the width of in.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] | in[1] | in[2] | ... | in[n-1]
//
func OrReduce(in, out *desim.Signal) desim.Process {
	checkSignals("ORReduce", in, out)
	return comb("ORReduce", func() {
		if in.Uint64() != 0 {
			out.WriteUint(1)
		} else {
			out.WriteUint(0)
		}
	}, in)
}

// AndReduce returns a N-Way AND gate, N being the width of in. in must have a
// fixed width.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] & in[1] & in[2] & ... & in[n-1]
//
func AndReduce(in, out *desim.Signal) desim.Process {
	checkSignals("ANDReduce", in, out)
	if in.Width() == 0 {
		panic(errors.Wrap(desim.ErrWidth, "ANDReduce: input signal must have a fixed width"))
	}
	all := desim.Bits(^uint64(0), in.Width()).Uint64()
	return comb("ANDReduce", func() {
		if in.Uint64() == all {
			out.WriteUint(1)
		} else {
			out.WriteUint(0)
		}
	}, in)
}
