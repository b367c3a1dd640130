package render

import (
	"strings"
	"testing"

	"github.com/shelvean/phaseflow/internal/ode"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 set, got %U", c.Grid[0][0])
	}

	// Out of range must be a no-op.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("clear should reset to the empty braille cell")
	}
}

func TestCanvasUnset(t *testing.T) {
	c := NewCanvas(4, 2)

	// Two dots in the same cell; unsetting one must keep the other.
	c.Set(0, 0)
	c.Set(1, 0)
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2808 {
		t.Errorf("expected only dot 4 to remain, got %U", c.Grid[0][0])
	}

	c.Unset(1, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected the empty braille cell, got %U", c.Grid[0][0])
	}

	// Unsetting an already-empty dot and out-of-range coordinates
	// must be no-ops.
	c.Unset(0, 0)
	c.Unset(-1, 0)
	c.Unset(0, -1)
	c.Unset(100, 0)
	c.Unset(0, 100)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected the empty braille cell, got %U", c.Grid[0][0])
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 0, 19, 39)

	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("line drew nothing")
	}
}

func TestProjectionFlipsY(t *testing.T) {
	c := NewCanvas(10, 10)
	bounds := ode.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	pr := NewProjection(bounds, c)

	_, yTop := pr.ToPixel(ode.Vec2{X: 0, Y: 1})
	_, yBottom := pr.ToPixel(ode.Vec2{X: 0, Y: -1})

	if yTop != 0 {
		t.Errorf("top of the viewport should map to pixel row 0, got %d", yTop)
	}
	if yBottom != pr.PxHeight-1 {
		t.Errorf("bottom should map to the last row, got %d", yBottom)
	}
}

func TestComposePortrait(t *testing.T) {
	bounds := ode.Rect{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2}
	tr := &ode.Trajectory{
		Points: []ode.Vec2{{X: -1, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 1}},
		Times:  []float64{0, 1, 2},
	}

	out := ComposePortrait([]*ode.Trajectory{tr}, bounds, 20, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("portrait contains no drawn dots")
	}
}
