package desim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/db47h/desim"
	"github.com/db47h/desim/hwlib"
	"github.com/db47h/desim/hwtest"
)

var _ = Describe("Scheduler", func() {
	var s *desim.Simulation

	BeforeEach(func() {
		s = desim.New()
	})

	Describe("delta cycles", func() {
		It("should settle a chain of processes without advancing time", func() {
			a := s.MustSignal("a", desim.Bits(0, 8))
			b := s.MustSignal("b", desim.Bits(0, 8))
			c := s.MustSignal("c", desim.Bits(0, 8))
			d := s.MustSignal("d", desim.Bits(0, 8))
			inc := func(name string, in, out *desim.Signal) desim.Process {
				return desim.NewProcess(name, func(p *desim.Proc) {
					for {
						p.WaitOn(in)
						out.WriteUint(in.Uint64() + 1)
					}
				})
			}
			var seen uint64
			r := hwtest.Record(s)
			err := s.Run(
				inc("A", a, b),
				inc("B", b, c),
				inc("C", c, d),
				desim.NewProcess("drive", func(p *desim.Proc) {
					p.Delay(5)
					a.WriteUint(10)
					p.Delay(5)
					seen = d.Uint64()
				}),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal(uint64(13)))
			Expect(s.Stats().TimeAdvances).To(Equal(uint64(2)))

			Expect(r.Changes).To(HaveLen(4))
			for i, name := range []string{"a", "b", "c", "d"} {
				Expect(r.Changes[i].Signal).To(Equal(name))
				Expect(r.Changes[i].Time).To(Equal(desim.Time(5)))
			}
		})

		It("should make combinational outputs consistent before time advances", func() {
			in := s.MustSignal("in", desim.Bits(0, 4))
			g := s.MustSignal("g", desim.Bits(0, 4))
			back := s.MustSignal("back", desim.Bits(0, 4))
			// last values observed at each time step
			last := make(map[desim.Time][2]uint64)
			var final uint64
			err := s.Run(
				hwlib.Bin2Gray(4, in, g),
				hwlib.Gray2Bin(4, g, back),
				hwlib.Input("in", in, 1, 16, func(i int) uint64 { return uint64(i) }),
				hwlib.Output("check", func(t desim.Time, v []desim.BitVector) {
					last[t] = [2]uint64{v[0].Uint64(), v[1].Uint64()}
				}, in, back),
				desim.NewProcess("final", func(p *desim.Proc) {
					p.Delay(16)
					final = back.Uint64()
				}),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(final).To(Equal(uint64(15)))
			Expect(last).To(HaveLen(15))
			for t, v := range last {
				Expect(v[0]).To(Equal(uint64(t)))
				Expect(v[1]).To(Equal(v[0]))
			}
		})
	})

	Describe("ordering", func() {
		It("should resume waiters of the same signal in FIFO order", func() {
			sig := s.MustSignal("sig", desim.Bits(0, 1))
			var order []string
			waiter := func(name string) desim.Process {
				return desim.NewProcess(name, func(p *desim.Proc) {
					p.WaitOn(sig)
					order = append(order, name)
				})
			}
			err := s.Run(
				waiter("w1"), waiter("w2"), waiter("w3"),
				hwlib.Stimulus("drive", sig, 1, 1),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(order).To(Equal([]string{"w1", "w2", "w3"}))
		})

		It("should fire equal time delay events in insertion order", func() {
			var order []string
			delayed := func(name string, ds ...desim.Time) desim.Process {
				return desim.NewProcess(name, func(p *desim.Proc) {
					for _, d := range ds {
						p.Delay(d)
					}
					order = append(order, name)
				})
			}
			err := s.Run(
				delayed("late", 3, 2),
				delayed("p1", 5),
				delayed("p2", 5),
				delayed("p3", 5),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(order).To(Equal([]string{"p1", "p2", "p3", "late"}))
			Expect(s.Now()).To(Equal(desim.Time(5)))
		})
	})

	Describe("termination", func() {
		It("should complete normally when processes wait forever", func() {
			a := s.MustSignal("a", desim.Int(0))
			err := s.Run(
				desim.NewProcess("idle", func(p *desim.Proc) { p.WaitOn() }),
				desim.NewProcess("watch", func(p *desim.Proc) { p.WaitOn(a) }),
			)
			Expect(err).NotTo(HaveOccurred())
			for _, p := range s.Procs() {
				Expect(p.State()).To(Equal(desim.WaitingOnSignals))
			}
		})

		It("should refuse to run twice", func() {
			p := desim.NewProcess("p", func(*desim.Proc) {})
			Expect(s.Run(p)).To(Succeed())
			Expect(s.Run(p)).To(MatchError(desim.ErrAlreadyRun))
		})
	})
})
