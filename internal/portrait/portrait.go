// Package portrait builds whole phase portraits: a grid of seeds, one
// bidirectional trajectory per seed, and a summary of how they ended.
package portrait

import (
	"sync"

	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/ode"
	"github.com/shelvean/phaseflow/internal/trace"
)

// GridSeeds lays an nx by ny lattice of seed points across the bounds,
// inset by half a cell so no seed starts exactly on the border.
func GridSeeds(bounds ode.Rect, nx, ny int) []ode.Vec2 {
	if nx <= 0 || ny <= 0 {
		return nil
	}

	dx := bounds.Width() / float64(nx)
	dy := bounds.Height() / float64(ny)

	seeds := make([]ode.Vec2, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			seeds = append(seeds, ode.Vec2{
				X: bounds.MinX + (float64(i)+0.5)*dx,
				Y: bounds.MinY + (float64(j)+0.5)*dy,
			})
		}
	}
	return seeds
}

// Portrait is a set of trajectories over a shared viewport.
type Portrait struct {
	Bounds       ode.Rect
	Trajectories []*ode.Trajectory
}

// Generate traces every seed bidirectionally. Trajectories are
// independent, so seeds fan out over a bounded worker pool; results
// keep seed order.
func Generate(f ode.VectorField, seeds []ode.Vec2, cfg ode.Config, workers int) (*Portrait, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 4
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}

	trajectories := make([]*ode.Trajectory, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	chunk := (len(seeds) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(seeds) {
			end = len(seeds)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			tc := trace.New(nil)
			for i := start; i < end; i++ {
				trajectories[i], errs[i] = tc.Bidirectional(f, seeds[i], cfg)
			}
		}(start, end)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Portrait{Bounds: cfg.Bounds, Trajectories: trajectories}, nil
}

// Report summarizes a generated portrait.
type Report struct {
	Seeds       int
	Points      int
	ByQuality   map[ode.Quality]int
	Equilibrium field.EquilibriumClass
	HasLinear   bool
}

// Summarize counts trajectory outcomes and, for linear fields, names
// the equilibrium at the origin.
func Summarize(f ode.VectorField, p *Portrait) Report {
	r := Report{
		Seeds:     len(p.Trajectories),
		ByQuality: make(map[ode.Quality]int),
	}
	for _, tr := range p.Trajectories {
		r.Points += tr.Len()
		r.ByQuality[tr.Quality]++
	}
	if lin, ok := f.(*field.Linear); ok {
		r.HasLinear = true
		r.Equilibrium = lin.Classify()
	}
	return r
}
