package field

import "github.com/shelvean/phaseflow/internal/ode"

// Duffing is the unforced Duffing oscillator.
//
//	dx/dt = y
//	dy/dt = -δ·y - α·x - β·x³
type Duffing struct {
	Alpha, Beta, Delta float64
}

func NewDuffing() *Duffing {
	return &Duffing{Alpha: -1.0, Beta: 1.0, Delta: 0.2}
}

func (d *Duffing) Eval(p ode.Vec2, _ float64) ode.Vec2 {
	return ode.Vec2{
		X: p.Y,
		Y: -d.Delta*p.Y - d.Alpha*p.X - d.Beta*p.X*p.X*p.X,
	}
}

func (d *Duffing) Params() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta}
}

func (d *Duffing) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		d.Alpha = value
	case "beta":
		d.Beta = value
	case "delta":
		d.Delta = value
	default:
		return ErrUnknownParam
	}
	return nil
}

// DoubleWell is the gradient flow of the potential V(x,y) = (x²-1)²/4 + y²/2.
// Two attracting wells at (±1, 0), a saddle between them.
type DoubleWell struct{}

func NewDoubleWell() *DoubleWell { return &DoubleWell{} }

func (DoubleWell) Eval(p ode.Vec2, _ float64) ode.Vec2 {
	return ode.Vec2{
		X: -p.X * (p.X*p.X - 1),
		Y: -p.Y,
	}
}
