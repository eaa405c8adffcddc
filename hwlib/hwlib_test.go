package hwlib_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/db47h/desim"
	hl "github.com/db47h/desim/hwlib"
	"github.com/pkg/errors"
)

type partFn func(ins, outs []*desim.Signal) desim.Process

func newSignals(s *desim.Simulation, prefix string, n int, width uint) []*desim.Signal {
	sigs := make([]*desim.Signal, n)
	for i := range sigs {
		sigs[i] = s.MustSignal(fmt.Sprintf("%s%d", prefix, i), desim.Bits(0, width))
	}
	return sigs
}

// testGate drives all combinations of nIn 1 bit inputs, first input being the
// msb, and checks the outputs against result[output][combination].
//
func testGate(t *testing.T, name string, nIn int, gate partFn, result [][]uint64) {
	t.Helper()
	s := desim.New()
	ins := newSignals(s, "in", nIn, 1)
	outs := newSignals(s, "out", len(result), 1)
	var errs []string

	tot := 1 << uint(nIn)
	tb := desim.NewProcess("tb", func(p *desim.Proc) {
		for i := 0; i < tot; i++ {
			for bit := range ins {
				ins[len(ins)-bit-1].WriteUint(uint64(i >> uint(bit)))
			}
			p.Delay(1)
			for o, out := range outs {
				if exp := result[o][i]; out.Uint64() != exp {
					errs = append(errs, fmt.Sprintf("%s %0*b: out%d = %d, got %d", name, nIn, i, o, exp, out.Uint64()))
				}
			}
		}
	})
	if err := s.Run(gate(ins, outs), tb); err != nil {
		t.Fatal(err)
	}
	for _, e := range errs {
		t.Error(e)
	}
}

func Test_gate_builtin(t *testing.T) {
	two := func(f func(a, b, out *desim.Signal) desim.Process) partFn {
		return func(ins, outs []*desim.Signal) desim.Process { return f(ins[0], ins[1], outs[0]) }
	}
	td := []struct {
		name   string
		nIn    int
		gate   partFn
		result [][]uint64 // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", 1, func(ins, outs []*desim.Signal) desim.Process { return hl.Not(ins[0], outs[0]) }, [][]uint64{{1, 0}}},
		{"AND", 2, two(hl.And), [][]uint64{{0, 0, 0, 1}}},
		{"NAND", 2, two(hl.Nand), [][]uint64{{1, 1, 1, 0}}},
		{"OR", 2, two(hl.Or), [][]uint64{{0, 1, 1, 1}}},
		{"NOR", 2, two(hl.Nor), [][]uint64{{1, 0, 0, 0}}},
		{"XOR", 2, two(hl.Xor), [][]uint64{{0, 1, 1, 0}}},
		{"XNOR", 2, two(hl.Xnor), [][]uint64{{1, 0, 0, 1}}},
		{"MUX", 3, func(ins, outs []*desim.Signal) desim.Process {
			return hl.Mux(ins[0], ins[1], ins[2], outs[0])
		}, [][]uint64{{0, 0, 0, 1, 1, 0, 1, 1}}},
		{"DMUX", 2, func(ins, outs []*desim.Signal) desim.Process {
			return hl.DMux(ins[0], ins[1], outs[0], outs[1])
		}, [][]uint64{{0, 0, 1, 0}, {0, 0, 0, 1}}},
		{"HalfAdder", 2, func(ins, outs []*desim.Signal) desim.Process {
			return hl.HalfAdder(ins[0], ins[1], outs[0], outs[1])
		}, [][]uint64{{0, 1, 1, 0}, {0, 0, 0, 1}}},
		{"FullAdder", 3, func(ins, outs []*desim.Signal) desim.Process {
			return hl.FullAdder(ins[0], ins[1], ins[2], outs[0], outs[1])
		}, [][]uint64{{0, 1, 1, 0, 1, 0, 0, 1}, {0, 0, 0, 1, 0, 1, 1, 1}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.name, d.nIn, d.gate, d.result)
		})
	}
}

func Test_gateN_builtin(t *testing.T) {
	td := []struct {
		name string
		gate func(a, b, out *desim.Signal) desim.Process
		ctrl func(a, b uint16) uint16
	}{
		{"AND", hl.And, func(a, b uint16) uint16 { return a & b }},
		{"NAND", hl.Nand, func(a, b uint16) uint16 { return ^(a & b) }},
		{"OR", hl.Or, func(a, b uint16) uint16 { return a | b }},
		{"NOR", hl.Nor, func(a, b uint16) uint16 { return ^(a | b) }},
		{"XOR", hl.Xor, func(a, b uint16) uint16 { return a ^ b }},
		{"XNOR", hl.Xnor, func(a, b uint16) uint16 { return ^(a ^ b) }},
		{"NOT", func(a, _, out *desim.Signal) desim.Process { return hl.Not(a, out) }, func(a, _ uint16) uint16 { return ^a }},
	}

	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s := desim.New()
			a := s.MustSignal("a", desim.Bits(0, 16))
			b := s.MustSignal("b", desim.Bits(0, 16))
			out := s.MustSignal("out", desim.Bits(0, 16))
			var errs []string
			tb := desim.NewProcess("tb", func(p *desim.Proc) {
				for i := 0; i < 1000; i++ {
					x, y := uint16(rand.Uint32()), uint16(rand.Uint32())
					a.WriteUint(uint64(x))
					b.WriteUint(uint64(y))
					p.Delay(1)
					if exp := d.ctrl(x, y); out.Uint64() != uint64(exp) {
						errs = append(errs, fmt.Sprintf("%s(%x, %x) = %x, got %x", d.name, x, y, exp, out.Uint64()))
					}
				}
			})
			if err := s.Run(d.gate(a, b, out), tb); err != nil {
				t.Fatal(err)
			}
			for _, e := range errs {
				t.Error(e)
			}
		})
	}
}

func Test_reduce(t *testing.T) {
	s := desim.New()
	in := s.MustSignal("in", desim.Bits(0, 4))
	or := s.MustSignal("or", desim.Bits(0, 1))
	and := s.MustSignal("and", desim.Bits(0, 1))
	var errs []string
	drive := desim.NewProcess("drive", func(p *desim.Proc) {
		for i := uint64(0); i < 16; i++ {
			in.WriteUint(i)
			p.Delay(1)
			expOr, expAnd := uint64(0), uint64(0)
			if i != 0 {
				expOr = 1
			}
			if i == 15 {
				expAnd = 1
			}
			if or.Uint64() != expOr || and.Uint64() != expAnd {
				errs = append(errs, fmt.Sprintf("%04b: or = %d, and = %d", i, or.Uint64(), and.Uint64()))
			}
		}
	})
	if err := s.Run(hl.OrReduce(in, or), hl.AndReduce(in, and), drive); err != nil {
		t.Fatal(err)
	}
	for _, e := range errs {
		t.Error(e)
	}
}

func expectPanic(t *testing.T, cause error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if err, ok := r.(error); !ok || cause != nil && errors.Cause(err) != cause {
			t.Fatalf("got panic %v, expected %v", r, cause)
		}
	}()
	f()
}

func Test_construction_errors(t *testing.T) {
	s := desim.New()
	b4 := s.MustSignal("b4", desim.Bits(0, 4))
	g4 := s.MustSignal("g4", desim.Bits(0, 4))
	free := s.MustSignal("free", desim.Int(0))

	expectPanic(t, desim.ErrWidth, func() { hl.Bin2Gray(8, b4, g4) })
	expectPanic(t, desim.ErrWidth, func() { hl.Gray2Bin(5, g4, b4) })
	expectPanic(t, desim.ErrWidth, func() { hl.Adder(b4, g4, free, nil) })
	expectPanic(t, desim.ErrWidth, func() { hl.AndReduce(free, b4) })
	expectPanic(t, nil, func() { hl.And(b4, nil, g4) })
}
