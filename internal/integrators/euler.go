package integrators

import "github.com/shelvean/phaseflow/internal/ode"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f ode.VectorField, p ode.Vec2, t, dt float64) ode.Vec2 {
	return p.Add(f.Eval(p, t).Scale(dt))
}
