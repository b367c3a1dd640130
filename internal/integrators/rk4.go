package integrators

import "github.com/shelvean/phaseflow/internal/ode"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f ode.VectorField, p ode.Vec2, t, dt float64) ode.Vec2 {
	k1 := f.Eval(p, t)
	k2 := f.Eval(p.Add(k1.Scale(dt*0.5)), t+dt*0.5)
	k3 := f.Eval(p.Add(k2.Scale(dt*0.5)), t+dt*0.5)
	k4 := f.Eval(p.Add(k3.Scale(dt)), t+dt)

	dt6 := dt / 6.0
	return ode.Vec2{
		X: p.X + dt6*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: p.Y + dt6*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
	}
}
