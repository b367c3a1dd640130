package field

import (
	"math"

	"github.com/shelvean/phaseflow/internal/ode"
)

// EquilibriumClass labels the fixed point of a linear field at the origin.
type EquilibriumClass int

const (
	Degenerate EquilibriumClass = iota
	Saddle
	Node
	Spiral
	Center
)

func (c EquilibriumClass) String() string {
	switch c {
	case Saddle:
		return "saddle"
	case Node:
		return "node"
	case Spiral:
		return "spiral"
	case Center:
		return "center"
	}
	return "degenerate"
}

// Linear is the planar linear field
//
//	dx/dt = a·x + b·y
//	dy/dt = c·x + d·y
type Linear struct {
	A, B, C, D float64
}

func NewLinear(a, b, c, d float64) *Linear {
	return &Linear{A: a, B: b, C: c, D: d}
}

func (l *Linear) Eval(p ode.Vec2, _ float64) ode.Vec2 {
	return ode.Vec2{
		X: l.A*p.X + l.B*p.Y,
		Y: l.C*p.X + l.D*p.Y,
	}
}

func (l *Linear) Trace() float64 { return l.A + l.D }

func (l *Linear) Det() float64 { return l.A*l.D - l.B*l.C }

// Discriminant of the characteristic polynomial; negative means
// complex eigenvalues, i.e. a rotation-dominated flow.
func (l *Linear) Discriminant() float64 {
	tr := l.Trace()
	return tr*tr - 4*l.Det()
}

// RotationDominated reports whether trajectories locally wind around
// the origin (spiral or center).
func (l *Linear) RotationDominated() bool {
	return l.Discriminant() < 0
}

// Classify determines the equilibrium type at the origin from the
// trace/determinant plane.
func (l *Linear) Classify() EquilibriumClass {
	det := l.Det()
	tr := l.Trace()
	switch {
	case det == 0:
		return Degenerate
	case det < 0:
		return Saddle
	case l.Discriminant() >= 0:
		return Node
	case tr == 0:
		return Center
	default:
		return Spiral
	}
}

// Stable reports whether the origin attracts nearby trajectories.
func (l *Linear) Stable() bool {
	return l.Det() > 0 && l.Trace() < 0
}

// Eigenvalues returns the real parts and the imaginary magnitude of
// the Jacobian's eigenvalue pair.
func (l *Linear) Eigenvalues() (re1, re2, im float64) {
	tr := l.Trace()
	disc := l.Discriminant()
	if disc >= 0 {
		s := math.Sqrt(disc)
		return (tr + s) / 2, (tr - s) / 2, 0
	}
	return tr / 2, tr / 2, math.Sqrt(-disc) / 2
}

func (l *Linear) Params() map[string]float64 {
	return map[string]float64{"a": l.A, "b": l.B, "c": l.C, "d": l.D}
}

func (l *Linear) SetParam(name string, value float64) error {
	switch name {
	case "a":
		l.A = value
	case "b":
		l.B = value
	case "c":
		l.C = value
	case "d":
		l.D = value
	default:
		return ErrUnknownParam
	}
	return nil
}
