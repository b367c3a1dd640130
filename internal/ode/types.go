package ode

import "math"

// Vec2 is a point or velocity in phase space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// VectorField assigns a velocity to each point of the plane.
// Implementations must be pure: same inputs, same output, no side effects.
type VectorField interface {
	Eval(p Vec2, t float64) Vec2
}

// FieldFunc adapts a plain function to VectorField.
type FieldFunc func(p Vec2, t float64) Vec2

func (f FieldFunc) Eval(p Vec2, t float64) Vec2 { return f(p, t) }

// Reversed negates a field so backward trajectories can be traced
// with a positive step size.
func Reversed(f VectorField) VectorField {
	return FieldFunc(func(p Vec2, t float64) Vec2 {
		return f.Eval(p, -t).Scale(-1)
	})
}

// Stepper advances a state by one step of size dt.
type Stepper interface {
	Step(f VectorField, p Vec2, t, dt float64) Vec2
}

// AdaptiveStepper also reports a local error estimate, normalized
// against the configured tolerance scale.
type AdaptiveStepper interface {
	Stepper
	StepErr(f VectorField, p Vec2, t, dt float64) (Vec2, float64)
}

// Rect is a closed axis-aligned viewport in phase space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func (r Rect) Valid() bool {
	return r.MinX < r.MaxX && r.MinY < r.MaxY
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Direction of integration in time.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Config holds tracer parameters. Zero values are filled from
// DefaultConfig by Normalize.
type Config struct {
	MaxSteps          int
	InitialStep       float64
	MinStep           float64
	MaxStep           float64
	Tolerance         float64
	Bounds            Rect
	ConvergenceTol    float64
	ConvergenceWindow int
	// SpiralStep is the fixed step used by the linear-field heuristic
	// when the flow is rotation-dominated.
	SpiralStep float64
}

func DefaultConfig() Config {
	return Config{
		MaxSteps:          2000,
		InitialStep:       0.01,
		MinStep:           1e-6,
		MaxStep:           0.1,
		Tolerance:         1e-6,
		Bounds:            Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		ConvergenceTol:    1e-9,
		ConvergenceWindow: 5,
		SpiralStep:        0.02,
	}
}

// Normalize fills unset fields from DefaultConfig. It does not validate.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.MaxSteps == 0 {
		c.MaxSteps = d.MaxSteps
	}
	if c.InitialStep == 0 {
		c.InitialStep = d.InitialStep
	}
	if c.MinStep == 0 {
		c.MinStep = d.MinStep
	}
	if c.MaxStep == 0 {
		c.MaxStep = d.MaxStep
	}
	if c.Tolerance == 0 {
		c.Tolerance = d.Tolerance
	}
	if c.Bounds == (Rect{}) {
		c.Bounds = d.Bounds
	}
	if c.ConvergenceTol == 0 {
		c.ConvergenceTol = d.ConvergenceTol
	}
	if c.ConvergenceWindow == 0 {
		c.ConvergenceWindow = d.ConvergenceWindow
	}
	if c.SpiralStep == 0 {
		c.SpiralStep = d.SpiralStep
	}
	return c
}

func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return ErrInvalidConfig
	}
	if c.MinStep <= 0 || c.MaxStep <= 0 || c.MinStep > c.MaxStep {
		return ErrInvalidConfig
	}
	if c.InitialStep <= 0 || c.Tolerance <= 0 {
		return ErrInvalidConfig
	}
	if !c.Bounds.Valid() {
		return ErrInvalidConfig
	}
	return nil
}

// Quality describes how a trajectory ended.
type Quality int

const (
	// QualityOK is the zero value, used for trajectories built outside
	// the tracer (e.g. reloaded from storage).
	QualityOK Quality = iota
	// QualityExhausted means the step budget ran out. Normal, not an error.
	QualityExhausted
	// QualityLeftBounds means the trajectory exited the viewport.
	QualityLeftBounds
	// QualityConverged means the last points collapsed onto a fixed point.
	QualityConverged
	// QualityDegraded means at least one step was accepted below MinStep.
	QualityDegraded
	// QualityTruncated means a step produced a non-finite coordinate and
	// the trajectory was cut at the last valid point.
	QualityTruncated
)

func (q Quality) String() string {
	switch q {
	case QualityOK:
		return "ok"
	case QualityExhausted:
		return "exhausted"
	case QualityLeftBounds:
		return "left-bounds"
	case QualityConverged:
		return "converged"
	case QualityDegraded:
		return "degraded"
	case QualityTruncated:
		return "truncated"
	}
	return "unknown"
}

// Worse reports the more severe of two qualities, used when merging
// the two halves of a bidirectional trace.
func (q Quality) Worse(o Quality) Quality {
	if o > q {
		return o
	}
	return q
}

// Stats counts the work done by one trace call.
type Stats struct {
	StepsTaken  int
	Rejected    int
	Evaluations int
	MinStepUsed float64
}

// Trajectory is the polyline approximation of one solution curve.
// Points are in insertion order; every coordinate is finite.
//
// Errors collects the per-step anomalies behind a degraded or
// truncated Quality, each a *TraceError carrying the step and time.
// They are informational: the trace call itself still succeeds.
type Trajectory struct {
	Points  []Vec2
	Times   []float64
	Quality Quality
	Stats   Stats
	Errors  []error
}

func (tr *Trajectory) Len() int { return len(tr.Points) }

// Seed returns the starting point of the trajectory.
func (tr *Trajectory) Seed() Vec2 { return tr.Points[0] }

func (tr *Trajectory) Last() Vec2 { return tr.Points[len(tr.Points)-1] }
