// Package field provides planar vector fields for trajectory tracing.
//
// Each field implements the [ode.VectorField] interface, defining the
// differential equations governing the flow:
//
//   - [Linear]: dx/dt = a·x + b·y, dy/dt = c·x + d·y, with equilibrium
//     classification on the trace/determinant plane
//   - [VanDerPol]: limit-cycle oscillator
//   - [Pendulum]: damped pendulum with separatrix structure
//   - [Duffing]: double-well oscillator
//
// Fields with tunable parameters also implement [Configurable].
package field
