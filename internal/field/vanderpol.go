package field

import "github.com/shelvean/phaseflow/internal/ode"

// VanDerPol implements the Van der Pol oscillator.
// State: (x, y) where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	Mu float64 // Nonlinearity parameter
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		Mu: 1.0, // Classic value for limit cycle
	}
}

func (v *VanDerPol) Eval(p ode.Vec2, _ float64) ode.Vec2 {
	return ode.Vec2{
		X: p.Y,
		Y: v.Mu*(1-p.X*p.X)*p.Y - p.X,
	}
}

func (v *VanDerPol) Params() map[string]float64 {
	return map[string]float64{"mu": v.Mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return ErrUnknownParam
	}
	v.Mu = value
	return nil
}
