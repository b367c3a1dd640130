package trace_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/ode"
	"github.com/shelvean/phaseflow/internal/trace"
)

var _ = Describe("Tracer", func() {
	var cfg ode.Config

	BeforeEach(func() {
		cfg = ode.DefaultConfig()
	})

	Describe("pure rotation", func() {
		rotation := field.NewLinear(0, 1, -1, 0)
		seed := ode.Vec2{X: 1, Y: 0}

		It("stays on the unit circle going forward", func() {
			tr, err := trace.Trace(rotation, seed, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(BeNumerically(">", 1))

			for _, p := range tr.Points {
				r2 := p.X*p.X + p.Y*p.Y
				Expect(math.Abs(r2 - 1)).To(BeNumerically("<", 1e-3))
			}
		})

		It("stays on the unit circle going backward", func() {
			tr, err := trace.Trace(rotation, seed, ode.Backward, cfg)
			Expect(err).NotTo(HaveOccurred())

			for _, p := range tr.Points {
				r2 := p.X*p.X + p.Y*p.Y
				Expect(math.Abs(r2 - 1)).To(BeNumerically("<", 1e-3))
			}
		})
	})

	Describe("contracting field", func() {
		sink := field.NewLinear(-1, 0, 0, -1)

		It("approaches the origin", func() {
			seed := ode.Vec2{X: 3, Y: 4}
			tr, err := trace.Trace(sink, seed, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Last().Norm()).To(BeNumerically("<", tr.Seed().Norm()))
		})

		It("stops early once the fixed-point window closes", func() {
			tr, err := trace.Trace(sink, ode.Vec2{X: 0.5}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Quality).To(Equal(ode.QualityConverged))
			Expect(tr.Stats.StepsTaken).To(BeNumerically("<", cfg.MaxSteps))
		})
	})

	Describe("input validation", func() {
		rotation := field.NewLinear(0, 1, -1, 0)

		It("rejects a zero step budget", func() {
			cfg.MaxSteps = 0
			_, err := trace.Trace(rotation, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).To(MatchError(ode.ErrInvalidConfig))
		})

		It("rejects min step above max step", func() {
			cfg.MinStep = 1.0
			cfg.MaxStep = 0.1
			_, err := trace.Trace(rotation, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).To(MatchError(ode.ErrInvalidConfig))
		})

		It("rejects a non-finite seed", func() {
			_, err := trace.Trace(rotation, ode.Vec2{X: math.NaN()}, ode.Forward, cfg)
			Expect(err).To(MatchError(ode.ErrNonFiniteSeed))

			_, err = trace.Trace(rotation, ode.Vec2{X: 1, Y: math.Inf(1)}, ode.Forward, cfg)
			Expect(err).To(MatchError(ode.ErrNonFiniteSeed))
		})

		It("rejects a nil field", func() {
			_, err := trace.Trace(nil, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).To(MatchError(ode.ErrNilField))
		})

		It("rejects a bogus direction", func() {
			_, err := trace.Trace(rotation, ode.Vec2{X: 1}, ode.Direction(0), cfg)
			Expect(err).To(MatchError(ode.ErrInvalidDirection))
		})
	})

	Describe("determinism", func() {
		It("returns identical trajectories for identical inputs", func() {
			f := field.NewVanDerPol()
			seed := ode.Vec2{X: 0.1, Y: 0.1}

			a, err := trace.Trace(f, seed, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := trace.Trace(f, seed, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Len()).To(Equal(a.Len()))
			Expect(b.Quality).To(Equal(a.Quality))
			for i := range a.Points {
				Expect(b.Points[i]).To(Equal(a.Points[i]))
				Expect(b.Times[i]).To(Equal(a.Times[i]))
			}
		})
	})

	Describe("bounds", func() {
		It("terminates within one step for an outward seed on the edge", func() {
			source := field.NewLinear(1, 0, 0, 1)
			cfg.Bounds = ode.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}

			tr, err := trace.Trace(source, ode.Vec2{X: 1, Y: 0}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Len()).To(BeNumerically("<=", 2))
			Expect(tr.Quality).To(Equal(ode.QualityLeftBounds))
		})

		It("keeps the exit point so the polyline crosses the border", func() {
			source := field.NewLinear(1, 0, 0, 1)
			cfg.Bounds = ode.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}

			tr, err := trace.Trace(source, ode.Vec2{X: 0.99, Y: 0}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Last().X).To(BeNumerically(">", 1))
		})
	})

	Describe("degenerate numerics", func() {
		It("truncates at the last finite point", func() {
			bad := ode.FieldFunc(func(p ode.Vec2, t float64) ode.Vec2 {
				return ode.Vec2{X: math.NaN(), Y: math.NaN()}
			})

			tr, err := trace.Trace(bad, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Quality).To(Equal(ode.QualityTruncated))
			Expect(tr.Len()).To(Equal(1))
			for _, p := range tr.Points {
				Expect(p.IsFinite()).To(BeTrue())
			}
		})

		It("records the truncating step in the trajectory errors", func() {
			bad := ode.FieldFunc(func(p ode.Vec2, t float64) ode.Vec2 {
				return ode.Vec2{X: math.NaN(), Y: math.NaN()}
			})

			tr, err := trace.Trace(bad, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Errors).To(HaveLen(1))
			var te *ode.TraceError
			Expect(errors.As(tr.Errors[0], &te)).To(BeTrue())
			Expect(te.Step).To(Equal(0))
			Expect(tr.Errors[0]).To(MatchError(ode.ErrNonFiniteStep))
		})

		It("flags degraded accuracy on step-size underflow instead of failing", func() {
			rotation := field.NewLinear(0, 1, -1, 0)
			cfg.Tolerance = 1e-14
			cfg.MinStep = 0.05
			cfg.InitialStep = 0.1
			cfg.MaxStep = 0.1

			tr, err := trace.Trace(rotation, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Quality).To(Equal(ode.QualityDegraded))
			Expect(tr.Len()).To(BeNumerically(">", 1))

			Expect(tr.Errors).NotTo(BeEmpty())
			for _, e := range tr.Errors {
				var te *ode.TraceError
				Expect(errors.As(e, &te)).To(BeTrue())
				Expect(e).To(MatchError(ode.ErrStepUnderflow))
			}
		})
	})

	Describe("budget", func() {
		It("never exceeds MaxSteps points past the seed", func() {
			rotation := field.NewLinear(0, 1, -1, 0)
			cfg.MaxSteps = 25

			tr, err := trace.Trace(rotation, ode.Vec2{X: 1}, ode.Forward, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Len()).To(BeNumerically("<=", cfg.MaxSteps+1))
			Expect(tr.Quality).To(Equal(ode.QualityExhausted))
		})
	})

	Describe("Bidirectional", func() {
		It("joins both halves with the seed counted once", func() {
			rotation := field.NewLinear(0, 1, -1, 0)
			cfg.MaxSteps = 100
			seed := ode.Vec2{X: 1, Y: 0}

			tc := trace.New(nil)
			joined, err := tc.Bidirectional(rotation, seed, cfg)
			Expect(err).NotTo(HaveOccurred())

			count := 0
			for _, p := range joined.Points {
				if p == seed {
					count++
				}
			}
			Expect(count).To(Equal(1))

			for i := 1; i < len(joined.Times); i++ {
				Expect(joined.Times[i]).To(BeNumerically(">", joined.Times[i-1]))
			}
		})
	})

	Describe("Batch", func() {
		It("traces seeds independently", func() {
			sink := field.NewLinear(-1, 0, 0, -1)
			seeds := []ode.Vec2{{X: 1}, {X: 2}, {Y: 3}}

			tc := trace.New(nil)
			trs, err := tc.Batch(sink, seeds, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(trs).To(HaveLen(3))

			for i, tr := range trs {
				solo, err := tc.Bidirectional(sink, seeds[i], cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(tr.Len()).To(Equal(solo.Len()))
			}
		})
	})
})
