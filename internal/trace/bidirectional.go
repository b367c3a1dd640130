package trace

import "github.com/shelvean/phaseflow/internal/ode"

// Bidirectional traces both time directions from the seed and joins
// them into a single polyline: the backward half reversed, then the
// forward half, with the seed counted once. Times are signed, so the
// joined Times slice ascends through zero at the seed.
func (tc *Tracer) Bidirectional(f ode.VectorField, seed ode.Vec2, cfg ode.Config) (*ode.Trajectory, error) {
	back, err := tc.Trace(f, seed, ode.Backward, cfg)
	if err != nil {
		return nil, err
	}
	fwd, err := tc.Trace(f, seed, ode.Forward, cfg)
	if err != nil {
		return nil, err
	}

	n := back.Len() + fwd.Len() - 1
	joined := &ode.Trajectory{
		Points:  make([]ode.Vec2, 0, n),
		Times:   make([]float64, 0, n),
		Quality: back.Quality.Worse(fwd.Quality),
		Stats: ode.Stats{
			StepsTaken:  back.Stats.StepsTaken + fwd.Stats.StepsTaken,
			Rejected:    back.Stats.Rejected + fwd.Stats.Rejected,
			Evaluations: back.Stats.Evaluations + fwd.Stats.Evaluations,
			MinStepUsed: minNonzero(back.Stats.MinStepUsed, fwd.Stats.MinStepUsed),
		},
	}
	joined.Errors = append(joined.Errors, back.Errors...)
	joined.Errors = append(joined.Errors, fwd.Errors...)

	for i := back.Len() - 1; i >= 1; i-- {
		joined.Points = append(joined.Points, back.Points[i])
		joined.Times = append(joined.Times, back.Times[i])
	}
	joined.Points = append(joined.Points, fwd.Points...)
	joined.Times = append(joined.Times, fwd.Times...)

	return joined, nil
}

// Batch traces each seed independently and in order. Trajectories share
// nothing; a validation error on the shared inputs aborts the batch.
func (tc *Tracer) Batch(f ode.VectorField, seeds []ode.Vec2, cfg ode.Config) ([]*ode.Trajectory, error) {
	out := make([]*ode.Trajectory, 0, len(seeds))
	for _, seed := range seeds {
		tr, err := tc.Bidirectional(f, seed, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}

func minNonzero(a, b float64) float64 {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	case a < b:
		return a
	}
	return b
}
