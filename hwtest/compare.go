// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/desim"
	"github.com/pkg/errors"
)

// A PartFn builds a part connected to the given input and output signals. A
// part can be made of several processes.
//
type PartFn func(ins, outs []*desim.Signal) []desim.Process

// maximum number of input bits tested exhaustively.
const maxExhaustive = 12

func newSignals(s *desim.Simulation, prefix string, widths []uint) []*desim.Signal {
	sigs := make([]*desim.Signal, len(widths))
	for i, w := range widths {
		sigs[i] = s.MustSignal(prefix+strconv.Itoa(i), desim.Bits(0, w))
	}
	return sigs
}

func inputString(ins []*desim.Signal) string {
	var b strings.Builder
	for _, in := range ins {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.Name())
		b.WriteRune('=')
		b.WriteString(in.Read().Bin())
	}
	return b.String()
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same input/output interface, described by the
// widths of their input and output signals.
//
// If the total input width is 12 bits or less, all input combinations are
// tested. Otherwise 4096 random combinations are tested. Each combination is
// held for one time unit.
//
func ComparePart(t *testing.T, inWidths, outWidths []uint, part1, part2 PartFn) {
	t.Helper()

	var total uint
	for _, w := range inWidths {
		if w == 0 {
			t.Fatal("input signals must have a fixed width")
		}
		total += w
	}

	s := desim.New()
	ins := newSignals(s, "in", inWidths)
	outs1 := newSignals(s, "p1_out", outWidths)
	outs2 := newSignals(s, "p2_out", outWidths)

	procs := append(part1(ins, outs1), part2(ins, outs2)...)

	iter := 1 << maxExhaustive
	exhaustive := total <= maxExhaustive
	if exhaustive {
		iter = 1 << total
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	var mismatch error
	set := func(i int) {
		for _, in := range ins {
			if exhaustive {
				in.WriteUint(uint64(i))
				i >>= in.Width()
			} else {
				in.WriteUint(rnd.Uint64())
			}
		}
	}
	tb := desim.NewProcess("compare", func(p *desim.Proc) {
		for i := 0; i < iter; i++ {
			set(i)
			p.Delay(1)
			for o := range outs1 {
				if v1, v2 := outs1[o].Read(), outs2[o].Read(); !v1.Equal(v2) {
					mismatch = errors.Errorf("\nInputs %s => %d: %s != %s", inputString(ins), o, v1.Bin(), v2.Bin())
					return
				}
			}
		}
	})

	start := time.Now()
	if err := s.Run(append(procs, tb)...); err != nil {
		t.Fatal(err)
	}
	if mismatch != nil {
		t.Fatal(mismatch)
	}
	elapsed := time.Since(start)
	st := s.Stats()
	t.Logf("%d processes. %d delta cycles in %v => %s", len(procs), st.DeltaCycles, elapsed, rate(st.TimeAdvances, elapsed))
}

func rate(n uint64, d time.Duration) string {
	return fmt.Sprintf("%.2f steps/s", float64(n)/(float64(d)/float64(time.Second)))
}
