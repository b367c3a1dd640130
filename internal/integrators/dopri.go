package integrators

import (
	"math"

	"github.com/shelvean/phaseflow/internal/ode"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Dopri is the Dormand-Prince 5(4) embedded pair. StepErr returns the
// 5th-order solution together with a scaled local error estimate.
type Dopri struct{}

func NewDopri() *Dopri {
	return &Dopri{}
}

func (d *Dopri) Step(f ode.VectorField, p ode.Vec2, t, dt float64) ode.Vec2 {
	next, _ := d.StepErr(f, p, t, dt)
	return next
}

func (d *Dopri) StepErr(f ode.VectorField, p ode.Vec2, t, dt float64) (ode.Vec2, float64) {
	k1 := f.Eval(p, t)

	p2 := p.Add(k1.Scale(dt * b21))
	k2 := f.Eval(p2, t+a2*dt)

	p3 := p.Add(k1.Scale(dt * b31)).Add(k2.Scale(dt * b32))
	k3 := f.Eval(p3, t+a3*dt)

	p4 := p.Add(k1.Scale(dt * b41)).Add(k2.Scale(dt * b42)).Add(k3.Scale(dt * b43))
	k4 := f.Eval(p4, t+a4*dt)

	p5 := p.Add(k1.Scale(dt * b51)).Add(k2.Scale(dt * b52)).Add(k3.Scale(dt * b53)).Add(k4.Scale(dt * b54))
	k5 := f.Eval(p5, t+a5*dt)

	p6 := p.Add(k1.Scale(dt * b61)).Add(k2.Scale(dt * b62)).Add(k3.Scale(dt * b63)).Add(k4.Scale(dt * b64)).Add(k5.Scale(dt * b65))
	k6 := f.Eval(p6, t+dt)

	next := ode.Vec2{
		X: p.X + dt*(c1*k1.X+c3*k3.X+c4*k4.X+c5*k5.X+c6*k6.X),
		Y: p.Y + dt*(c1*k1.Y+c3*k3.Y+c4*k4.Y+c5*k5.Y+c6*k6.Y),
	}

	k7 := f.Eval(next, t+dt)

	errX := dt * (dc1*k1.X + dc3*k3.X + dc4*k4.X + dc5*k5.X + dc6*k6.X + dc7*k7.X)
	errY := dt * (dc1*k1.Y + dc3*k3.Y + dc4*k4.Y + dc5*k5.Y + dc6*k6.Y + dc7*k7.Y)

	scaleX := math.Abs(p.X) + math.Abs(dt*k1.X) + 1e-10
	scaleY := math.Abs(p.Y) + math.Abs(dt*k1.Y) + 1e-10

	errMax := math.Max(math.Abs(errX)/scaleX, math.Abs(errY)/scaleY)

	return next, errMax
}

// Evaluations per StepErr call; used by the tracer's statistics.
const DopriEvaluations = 7
