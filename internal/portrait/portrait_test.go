package portrait

import (
	"testing"

	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/ode"
)

func TestGridSeeds(t *testing.T) {
	bounds := ode.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	seeds := GridSeeds(bounds, 4, 3)

	if len(seeds) != 12 {
		t.Fatalf("expected 12 seeds, got %d", len(seeds))
	}
	for _, s := range seeds {
		if !bounds.Contains(s) {
			t.Errorf("seed %+v outside bounds", s)
		}
		// Half-cell inset keeps seeds off the border.
		if s.X == bounds.MinX || s.X == bounds.MaxX || s.Y == bounds.MinY || s.Y == bounds.MaxY {
			t.Errorf("seed %+v on the border", s)
		}
	}

	if GridSeeds(bounds, 0, 3) != nil {
		t.Error("expected nil for a degenerate grid")
	}
}

func TestGenerate(t *testing.T) {
	f := field.NewLinear(-1, 0, 0, -1)
	cfg := ode.DefaultConfig()
	cfg.MaxSteps = 200
	seeds := GridSeeds(cfg.Bounds, 3, 3)

	p, err := Generate(f, seeds, cfg, 4)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(p.Trajectories) != len(seeds) {
		t.Fatalf("expected %d trajectories, got %d", len(seeds), len(p.Trajectories))
	}
	for i, tr := range p.Trajectories {
		if tr == nil {
			t.Fatalf("trajectory %d missing", i)
		}
		for _, pt := range tr.Points {
			if !pt.IsFinite() {
				t.Fatalf("trajectory %d contains a non-finite point", i)
			}
		}
	}
}

func TestGenerateMatchesSequential(t *testing.T) {
	f := field.NewLinear(0, 1, -1, 0)
	cfg := ode.DefaultConfig()
	cfg.MaxSteps = 100
	seeds := GridSeeds(cfg.Bounds, 2, 2)

	parallel, err := Generate(f, seeds, cfg, 4)
	if err != nil {
		t.Fatalf("parallel generate failed: %v", err)
	}
	sequential, err := Generate(f, seeds, cfg, 1)
	if err != nil {
		t.Fatalf("sequential generate failed: %v", err)
	}

	for i := range seeds {
		a, b := parallel.Trajectories[i], sequential.Trajectories[i]
		if a.Len() != b.Len() {
			t.Fatalf("seed %d: lengths differ: %d vs %d", i, a.Len(), b.Len())
		}
		for j := range a.Points {
			if a.Points[j] != b.Points[j] {
				t.Fatalf("seed %d point %d differs", i, j)
			}
		}
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := ode.DefaultConfig()
	cfg.MaxSteps = 0

	_, err := Generate(field.NewLinear(0, 1, -1, 0), []ode.Vec2{{X: 1}}, cfg, 2)
	if err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestSummarize(t *testing.T) {
	f := field.NewLinear(-0.2, 1, -1, -0.2)
	cfg := ode.DefaultConfig()
	cfg.MaxSteps = 100
	seeds := GridSeeds(cfg.Bounds, 2, 2)

	p, err := Generate(f, seeds, cfg, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	r := Summarize(f, p)
	if r.Seeds != 4 {
		t.Errorf("expected 4 seeds, got %d", r.Seeds)
	}
	if !r.HasLinear || r.Equilibrium != field.Spiral {
		t.Errorf("expected spiral equilibrium, got %v", r.Equilibrium)
	}

	total := 0
	for _, n := range r.ByQuality {
		total += n
	}
	if total != r.Seeds {
		t.Errorf("quality counts (%d) should cover all seeds (%d)", total, r.Seeds)
	}
}
