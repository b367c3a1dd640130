package trace

import (
	"math"

	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/integrators"
	"github.com/shelvean/phaseflow/internal/ode"
)

// maxShrink bounds the halve-and-retry loop within a single step so a
// pathological error estimate cannot spin forever.
const maxShrink = 16

// Tracer produces trajectories from seed points. The zero value is not
// usable; construct with New.
type Tracer struct {
	stepper ode.Stepper
}

// New returns a Tracer using the given stepper. A nil stepper selects
// the Dormand-Prince adaptive pair.
func New(stepper ode.Stepper) *Tracer {
	if stepper == nil {
		stepper = integrators.NewDopri()
	}
	return &Tracer{stepper: stepper}
}

// Trace integrates the field from seed in the given direction until the
// step budget runs out, the trajectory leaves the bounds, a step turns
// non-finite, or the flow settles onto a fixed point.
//
// The returned trajectory always contains the seed and only finite
// points. Degenerate numerics never fail the call; they are reported
// through the trajectory's Quality. Only invalid configuration, a nil
// field, a bad direction, or a non-finite seed produce an error.
func (tc *Tracer) Trace(f ode.VectorField, seed ode.Vec2, dir ode.Direction, cfg ode.Config) (*ode.Trajectory, error) {
	if f == nil {
		return nil, ode.ErrNilField
	}
	if dir != ode.Forward && dir != ode.Backward {
		return nil, ode.ErrInvalidDirection
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !seed.IsFinite() {
		return nil, ode.ErrNonFiniteSeed
	}

	// The heuristic step chooser needs the linear coefficients; grab
	// them before the direction wrapper hides the concrete type.
	lin, _ := f.(*field.Linear)

	flow := f
	if dir == ode.Backward {
		flow = ode.Reversed(f)
	}

	tr := &ode.Trajectory{
		Points: make([]ode.Vec2, 0, cfg.MaxSteps+1),
		Times:  make([]float64, 0, cfg.MaxSteps+1),
		Stats:  ode.Stats{MinStepUsed: math.Inf(1)},
	}
	tr.Points = append(tr.Points, seed)
	tr.Times = append(tr.Times, 0)

	adaptive, isAdaptive := tc.stepper.(ode.AdaptiveStepper)

	p := seed
	t := 0.0
	dt := clamp(cfg.InitialStep, cfg.MinStep, cfg.MaxStep)
	degraded := false
	quality := ode.QualityExhausted

	for step := 0; step < cfg.MaxSteps; step++ {
		var next ode.Vec2

		switch {
		case isAdaptive:
			var underflow bool
			next, dt, underflow = tc.adaptiveStep(adaptive, flow, p, t, dt, cfg, &tr.Stats)
			if underflow {
				degraded = true
				tr.Errors = append(tr.Errors, &ode.TraceError{
					Step:    step,
					Time:    float64(dir) * t,
					Wrapped: ode.ErrStepUnderflow,
				})
			}
		case lin != nil:
			dt = integrators.HeuristicStep(lin, p, cfg)
			next = tc.stepper.Step(flow, p, t, dt)
		default:
			next = tc.stepper.Step(flow, p, t, dt)
		}

		if dt < tr.Stats.MinStepUsed {
			tr.Stats.MinStepUsed = dt
		}

		if !next.IsFinite() {
			quality = ode.QualityTruncated
			tr.Errors = append(tr.Errors, &ode.TraceError{
				Step:    step,
				Time:    float64(dir) * t,
				Wrapped: ode.ErrNonFiniteStep,
			})
			break
		}

		p = next
		t += dt
		tr.Stats.StepsTaken++
		tr.Points = append(tr.Points, p)
		tr.Times = append(tr.Times, float64(dir)*t)

		if tr.Stats.StepsTaken >= cfg.MaxSteps {
			quality = ode.QualityExhausted
			break
		}
		if !cfg.Bounds.Contains(p) {
			quality = ode.QualityLeftBounds
			break
		}
		if converged(tr.Points, cfg.ConvergenceWindow, cfg.ConvergenceTol) {
			quality = ode.QualityConverged
			break
		}
	}

	if degraded {
		quality = quality.Worse(ode.QualityDegraded)
	}
	tr.Quality = quality

	if math.IsInf(tr.Stats.MinStepUsed, 1) {
		tr.Stats.MinStepUsed = 0
	}
	return tr, nil
}

// adaptiveStep proposes a step and halves it until the local error
// estimate drops below tolerance. Below MinStep the candidate is
// accepted anyway and flagged, per the degraded-accuracy contract.
// The returned dt is the suggestion for the next step.
func (tc *Tracer) adaptiveStep(stepper ode.AdaptiveStepper, f ode.VectorField, p ode.Vec2, t, dt float64, cfg ode.Config, stats *ode.Stats) (ode.Vec2, float64, bool) {
	for i := 0; i < maxShrink; i++ {
		next, errEst := stepper.StepErr(f, p, t, dt)
		stats.Evaluations += integrators.DopriEvaluations

		if errEst <= cfg.Tolerance || !next.IsFinite() {
			// Grow cautiously when the estimate leaves headroom.
			nextDt := dt
			if errEst < cfg.Tolerance/10 {
				nextDt = math.Min(dt*2, cfg.MaxStep)
			}
			return next, nextDt, false
		}

		if dt/2 < cfg.MinStep {
			return next, dt, true
		}

		dt /= 2
		stats.Rejected++
	}

	next, _ := stepper.StepErr(f, p, t, dt)
	stats.Evaluations += integrators.DopriEvaluations
	return next, dt, true
}

// converged reports whether the last window points span a coordinate
// range below tol on both axes.
func converged(points []ode.Vec2, window int, tol float64) bool {
	if len(points) < window {
		return false
	}
	tail := points[len(points)-window:]

	minX, maxX := tail[0].X, tail[0].X
	minY, maxY := tail[0].Y, tail[0].Y
	for _, p := range tail[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX-minX < tol && maxY-minY < tol
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Trace runs a one-off trace with the default Dormand-Prince stepper.
func Trace(f ode.VectorField, seed ode.Vec2, dir ode.Direction, cfg ode.Config) (*ode.Trajectory, error) {
	return New(nil).Trace(f, seed, dir, cfg)
}
