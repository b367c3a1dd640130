package export

import (
	"fmt"
	"strings"

	"github.com/shelvean/phaseflow/internal/ode"
)

// TrajectoriesToSVG renders trajectories as polylines on a dark
// background. Coordinates are mapped from the bounds into a width x
// height pixel viewport with Y flipped.
func TrajectoriesToSVG(trajectories []*ode.Trajectory, bounds ode.Rect, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Axes, where visible.
	if bounds.MinX <= 0 && bounds.MaxX >= 0 {
		x := mapX(0, bounds, width)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#333344" stroke-width="1"/>
`, x, x, height))
	}
	if bounds.MinY <= 0 && bounds.MaxY >= 0 {
		y := mapY(0, bounds, height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333344" stroke-width="1"/>
`, y, width, y))
	}

	for _, tr := range trajectories {
		if tr.Len() < 2 {
			continue
		}
		sb.WriteString(`<polyline fill="none" stroke="#00ff88" stroke-width="1" points="`)
		for i, p := range tr.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", mapX(p.X, bounds, width), mapY(p.Y, bounds, height)))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func mapX(x float64, bounds ode.Rect, width int) float64 {
	return (x - bounds.MinX) / bounds.Width() * float64(width)
}

func mapY(y float64, bounds ode.Rect, height int) float64 {
	return float64(height) - (y-bounds.MinY)/bounds.Height()*float64(height)
}
