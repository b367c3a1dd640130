// Package tui provides the live terminal view: a trajectory traced
// point by point over the phase plane with a stats sidebar.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/shelvean/phaseflow/internal/ode"
	"github.com/shelvean/phaseflow/internal/render"
	"github.com/shelvean/phaseflow/internal/trace"
)

const (
	canvasWidth  = 70
	canvasHeight = 20
	graphHeight  = 6
	graphWidth   = 60
)

type TickMsg time.Time

// Model replays a traced trajectory on a braille canvas.
type Model struct {
	fieldName  string
	trajectory *ode.Trajectory
	bounds     ode.Rect

	canvas   *render.Canvas
	proj     render.Projection
	playHead int
	speed    int // points advanced per tick
	fps      int
	running  bool
	showY    bool // graph pane: x(t) or y(t)
	err      error
}

// NewModel traces the seed up front and prepares the replay.
func NewModel(fieldName string, f ode.VectorField, seed ode.Vec2, cfg ode.Config, fps int) Model {
	m := Model{
		fieldName: fieldName,
		bounds:    cfg.Bounds,
		speed:     2,
		fps:       fps,
		running:   true,
	}

	tr, err := trace.New(nil).Bidirectional(f, seed, cfg)
	if err != nil {
		m.err = err
		return m
	}
	m.trajectory = tr
	m.canvas = render.NewCanvas(canvasWidth, canvasHeight)
	m.proj = render.NewProjection(cfg.Bounds, m.canvas)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A failed trace leaves canvas and trajectory nil; nothing to do
	// but wait for the Quit issued by Init.
	if m.err != nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.canvas.Clear()
		case "tab":
			m.showY = !m.showY
		case "+", "=":
			if m.speed < 32 {
				m.speed *= 2
			}
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil

	case TickMsg:
		if m.running && m.playHead < m.trajectory.Len() {
			next := m.playHead + m.speed
			if next > m.trajectory.Len() {
				next = m.trajectory.Len()
			}
			for i := m.playHead; i < next; i++ {
				if i > 0 {
					a := m.trajectory.Points[i-1]
					b := m.trajectory.Points[i]
					x0, y0 := m.proj.ToPixel(a)
					x1, y1 := m.proj.ToPixel(b)
					m.canvas.Line(x0, y0, x1, y1)
				}
			}
			m.playHead = next
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("trace failed: %v\n", m.err)
	}

	header := render.Header.Render(fmt.Sprintf("phaseflow live: %s", m.fieldName))

	plot := render.PlotPane.Render(m.canvas.String())
	stats := render.StatsPane.Render(m.statsView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, plot, stats)

	graph := m.graphView()
	help := render.Help.Render("space pause · r restart · tab graph · +/- speed · q quit")

	return strings.Join([]string{header, body, graph, help}, "\n")
}

func (m Model) statsView() string {
	tr := m.trajectory
	idx := m.playHead
	if idx >= tr.Len() {
		idx = tr.Len() - 1
	}
	p := tr.Points[idx]

	status := "playing"
	if !m.running {
		status = "paused"
	} else if m.playHead >= tr.Len() {
		status = "done"
	}

	rows := []struct{ label, value string }{
		{"status", status},
		{"t", fmt.Sprintf("%.3f", tr.Times[idx])},
		{"x", fmt.Sprintf("%+.4f", p.X)},
		{"y", fmt.Sprintf("%+.4f", p.Y)},
		{"points", fmt.Sprintf("%d / %d", m.playHead, tr.Len())},
		{"steps", fmt.Sprintf("%d", tr.Stats.StepsTaken)},
		{"rejected", fmt.Sprintf("%d", tr.Stats.Rejected)},
		{"speed", fmt.Sprintf("%dx", m.speed)},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(render.Label.Render(r.label))
		sb.WriteString(render.Value.Render(r.value))
		sb.WriteByte('\n')
	}
	sb.WriteString(render.Label.Render("quality"))
	sb.WriteString(render.QualityStyle(tr.Quality).Render(tr.Quality.String()))
	return sb.String()
}

func (m Model) graphView() string {
	end := m.playHead
	if end < 2 {
		return ""
	}
	if end > m.trajectory.Len() {
		end = m.trajectory.Len()
	}

	series := make([]float64, end)
	name := "x(t)"
	for i := 0; i < end; i++ {
		if m.showY {
			series[i] = m.trajectory.Points[i].Y
		} else {
			series[i] = m.trajectory.Points[i].X
		}
	}
	if m.showY {
		name = "y(t)"
	}
	if len(series) > graphWidth {
		series = series[len(series)-graphWidth:]
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(name),
	)
	return render.PlotPane.Render(graph)
}

// Run blocks until the user quits the live view.
func Run(fieldName string, f ode.VectorField, seed ode.Vec2, cfg ode.Config, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	p := tea.NewProgram(NewModel(fieldName, f, seed, cfg, fps))
	_, err := p.Run()
	return err
}
