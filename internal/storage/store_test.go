package storage

import (
	"testing"

	"github.com/shelvean/phaseflow/internal/ode"
)

func sampleTrajectory() *ode.Trajectory {
	return &ode.Trajectory{
		Points:  []ode.Vec2{{X: 1, Y: 0}, {X: 0.9, Y: 0.4}},
		Times:   []float64{0, 0.1},
		Quality: ode.QualityExhausted,
		Stats:   ode.Stats{StepsTaken: 1},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id, err := s.Save("rotation", ode.DefaultConfig(), sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Field != "rotation" {
		t.Errorf("expected field rotation, got %s", meta.Field)
	}
	if meta.Quality != "exhausted" {
		t.Errorf("expected quality exhausted, got %s", meta.Quality)
	}

	times, points, err := s.LoadPoints(id)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(points) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 points and times, got %d/%d", len(points), len(times))
	}
	if points[0] != (ode.Vec2{X: 1, Y: 0}) {
		t.Errorf("unexpected first point: %+v", points[0])
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := s.Save("saddle", ode.DefaultConfig(), sampleTrajectory()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Field != "saddle" {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestListMissingDir(t *testing.T) {
	s := New("/nonexistent/phaseflow-test")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list of missing dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
