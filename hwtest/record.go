// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"fmt"
	"strings"

	"github.com/db47h/desim"
)

// A Change records a signal value change.
//
type Change struct {
	Time     desim.Time
	Signal   string
	Old, New desim.BitVector
}

func (c Change) String() string {
	return fmt.Sprintf("@%d %s: %s -> %s", c.Time, c.Signal, c.Old, c.New)
}

// A Recorder records all signal changes of a simulation.
//
type Recorder struct {
	Changes []Change
}

// Record returns a new Recorder attached to s. It must be called before
// running s.
//
func Record(s *desim.Simulation) *Recorder {
	r := new(Recorder)
	s.OnCommit(func(t desim.Time, sig *desim.Signal, old, new desim.BitVector) {
		r.Changes = append(r.Changes, Change{t, sig.Name(), old, new})
	})
	return r
}

// String returns the recorded changes, one per line.
//
func (r *Recorder) String() string {
	var b strings.Builder
	for _, c := range r.Changes {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
