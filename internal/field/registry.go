package field

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shelvean/phaseflow/internal/ode"
)

var ErrUnknownParam = errors.New("field: unknown parameter")

// Configurable is implemented by fields with runtime-adjustable parameters.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

var builtins = map[string]func() ode.VectorField{
	"rotation":    func() ode.VectorField { return NewLinear(0, 1, -1, 0) },
	"spiral_sink": func() ode.VectorField { return NewLinear(-0.2, 1, -1, -0.2) },
	"saddle":      func() ode.VectorField { return NewLinear(1, 0, 0, -1) },
	"sink":        func() ode.VectorField { return NewLinear(-1, 0, 0, -1) },
	"vanderpol":   func() ode.VectorField { return NewVanDerPol() },
	"pendulum":    func() ode.VectorField { return NewPendulum() },
	"duffing":     func() ode.VectorField { return NewDuffing() },
	"doublewell":  func() ode.VectorField { return NewDoubleWell() },
}

// New constructs a builtin field by name.
func New(name string) (ode.VectorField, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("field: unknown field %q", name)
	}
	return ctor(), nil
}

// Names lists the builtin fields in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
