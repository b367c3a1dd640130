package render

import (
	"github.com/shelvean/phaseflow/internal/ode"
)

// Projection maps phase-space coordinates onto canvas sub-pixels.
// Y is flipped: phase space grows up, the terminal grows down.
type Projection struct {
	Bounds ode.Rect
	// Sub-pixel dimensions of the target canvas.
	PxWidth, PxHeight int
}

func NewProjection(bounds ode.Rect, canvas *Canvas) Projection {
	return Projection{
		Bounds:   bounds,
		PxWidth:  canvas.Width * 2,
		PxHeight: canvas.Height * 4,
	}
}

func (pr Projection) ToPixel(p ode.Vec2) (int, int) {
	fx := (p.X - pr.Bounds.MinX) / pr.Bounds.Width()
	fy := (p.Y - pr.Bounds.MinY) / pr.Bounds.Height()

	x := int(fx * float64(pr.PxWidth-1))
	y := pr.PxHeight - 1 - int(fy*float64(pr.PxHeight-1))
	return x, y
}

// DrawTrajectory draws the polyline segment by segment. Segments whose
// endpoints both fall outside the viewport are skipped; partially
// visible segments rely on the canvas's own clipping.
func DrawTrajectory(c *Canvas, pr Projection, tr *ode.Trajectory) {
	if tr.Len() == 0 {
		return
	}
	if tr.Len() == 1 {
		x, y := pr.ToPixel(tr.Points[0])
		c.Set(x, y)
		return
	}

	for i := 1; i < tr.Len(); i++ {
		a, b := tr.Points[i-1], tr.Points[i]
		if !pr.Bounds.Contains(a) && !pr.Bounds.Contains(b) {
			continue
		}
		x0, y0 := pr.ToPixel(a)
		x1, y1 := pr.ToPixel(b)
		c.Line(x0, y0, x1, y1)
	}
}

// DrawAxes overlays the coordinate axes where they cross the viewport.
func DrawAxes(c *Canvas, pr Projection) {
	if pr.Bounds.MinX <= 0 && pr.Bounds.MaxX >= 0 {
		x, _ := pr.ToPixel(ode.Vec2{X: 0, Y: pr.Bounds.MinY})
		for y := 0; y < pr.PxHeight; y += 4 {
			c.Set(x, y)
		}
	}
	if pr.Bounds.MinY <= 0 && pr.Bounds.MaxY >= 0 {
		_, y := pr.ToPixel(ode.Vec2{X: pr.Bounds.MinX, Y: 0})
		for x := 0; x < pr.PxWidth; x += 2 {
			c.Set(x, y)
		}
	}
}

// ComposePortrait renders a set of trajectories plus axes into a
// ready-to-print string.
func ComposePortrait(trajectories []*ode.Trajectory, bounds ode.Rect, width, height int) string {
	c := NewCanvas(width, height)
	pr := NewProjection(bounds, c)

	DrawAxes(c, pr)
	for _, tr := range trajectories {
		DrawTrajectory(c, pr, tr)
	}
	return c.String()
}
