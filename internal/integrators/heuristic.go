package integrators

import (
	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/ode"
)

// targetArc is the per-step arc length aimed for when scaling the
// step by local speed.
const targetArc = 0.05

// HeuristicStep picks a step size for a linear field without an error
// estimate. Rotation-dominated flows (complex eigenvalues) get a fixed
// small step so spirals stay smooth; otherwise the step is scaled
// inversely with local speed, clamped to [MinStep, MaxStep].
func HeuristicStep(lin *field.Linear, p ode.Vec2, cfg ode.Config) float64 {
	if lin.RotationDominated() {
		return clamp(cfg.SpiralStep, cfg.MinStep, cfg.MaxStep)
	}

	speed := lin.Eval(p, 0).Norm()
	if speed == 0 {
		return cfg.MaxStep
	}
	return clamp(targetArc/speed, cfg.MinStep, cfg.MaxStep)
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
