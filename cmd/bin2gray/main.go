// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command bin2gray runs a testbench for a binary to Gray code encoder and
// prints its outputs for every possible input.
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/db47h/desim"
	"github.com/db47h/desim/hwlib"
	"github.com/pkg/errors"
)

func testbench(w io.Writer, width uint, delay desim.Time, opts ...desim.Option) (*desim.Simulation, error) {
	if width == 0 || width > 16 {
		return nil, errors.Errorf("invalid width %d", width)
	}
	s := desim.New(opts...)
	b, err := s.NewSignal("B", desim.Bits(0, width))
	if err != nil {
		return nil, err
	}
	g, err := s.NewSignal("G", desim.Bits(0, width))
	if err != nil {
		return nil, err
	}

	stimulus := desim.NewProcess("stimulus", func(p *desim.Proc) {
		for i := uint64(0); i < 1<<width; i++ {
			b.WriteUint(i)
			p.Delay(delay)
			fmt.Fprintf(w, "input: %s | output: %s\n", b.Read(), g.Read())
		}
	})

	return s, errors.Wrap(s.Run(hwlib.Bin2Gray(width, b, g), stimulus), "simulation failed")
}

func main() {
	var (
		width = flag.Uint("width", 4, "encoder bit width (1-16)")
		delay = flag.Uint64("delay", 10, "delay between input changes")
		trace = flag.Bool("trace", false, "log every signal change")
		until = flag.Uint64("until", 0, "stop simulation after this time (0 = run to completion)")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("bin2gray: ")

	opts := []desim.Option{desim.WithLogger(log.New(os.Stderr, "bin2gray: ", 0)), desim.WithTrace(*trace)}
	if *until > 0 {
		opts = append(opts, desim.WithUntil(desim.Time(*until)))
	}

	s, err := testbench(os.Stdout, *width, desim.Time(*delay), opts...)
	if err != nil {
		log.Fatal(err)
	}
	if *trace {
		st := s.Stats()
		log.Printf("done at time %d: %d time steps, %d delta cycles, %d commits", s.Now(), st.TimeAdvances, st.DeltaCycles, st.Commits)
	}
}
