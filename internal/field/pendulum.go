package field

import (
	"math"

	"github.com/shelvean/phaseflow/internal/ode"
)

// Pendulum is the damped pendulum in angle/angular-velocity coordinates.
//
//	dθ/dt = ω
//	dω/dt = -(g/l)·sin(θ) - γ·ω
type Pendulum struct {
	GravityOverLength float64
	Damping           float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{GravityOverLength: 1.0, Damping: 0.0}
}

func (p *Pendulum) Eval(s ode.Vec2, _ float64) ode.Vec2 {
	return ode.Vec2{
		X: s.Y,
		Y: -p.GravityOverLength*math.Sin(s.X) - p.Damping*s.Y,
	}
}

func (p *Pendulum) Params() map[string]float64 {
	return map[string]float64{"g_over_l": p.GravityOverLength, "damping": p.Damping}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "g_over_l":
		p.GravityOverLength = value
	case "damping":
		p.Damping = value
	default:
		return ErrUnknownParam
	}
	return nil
}
