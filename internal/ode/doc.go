// Package ode provides the core primitives for phase-space trajectory
// tracing.
//
// The package defines the fundamental types shared by the tracer and
// its surfaces:
//
//   - [Vec2]: point or velocity in the phase plane
//   - [VectorField]: the right hand side of dX/dt = f(X, t)
//   - [Stepper] / [AdaptiveStepper]: numerical integrator interfaces
//   - [Trajectory]: finite polyline approximation of one solution curve
//   - [Config]: tracer parameters with defaults
//
// # Example
//
//	f := field.NewLinear(0, 1, -1, 0)
//	tr, _ := trace.Trace(f, ode.Vec2{X: 1}, ode.Forward, ode.DefaultConfig())
//
// # Thread Safety
//
// Trajectories are immutable once returned. Trace calls share no state,
// so independent trajectories may be computed from multiple goroutines.
package ode
