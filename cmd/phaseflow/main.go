package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/shelvean/phaseflow/internal/config"
	"github.com/shelvean/phaseflow/internal/export"
	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/integrators"
	"github.com/shelvean/phaseflow/internal/ode"
	"github.com/shelvean/phaseflow/internal/portrait"
	"github.com/shelvean/phaseflow/internal/render"
	"github.com/shelvean/phaseflow/internal/storage"
	"github.com/shelvean/phaseflow/internal/trace"
	"github.com/shelvean/phaseflow/internal/tui"
)

var (
	dataDir    string
	seedX      float64
	seedY      float64
	maxSteps   int
	tolerance  float64
	extent     float64
	width      int
	height     int
	saveRun    bool
	svgPath    string
	csvPath    string
	jsonPath   string
	configFile string
	preset     string
	params     []string
	gridX      int
	gridY      int
	workers    int
	frameRate  int
	outPath    string
	format     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phaseflow",
		Short: "phase portrait trajectory tracer",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".phaseflow", "data directory")

	traceCmd := &cobra.Command{
		Use:   "trace [field]",
		Short: "trace one trajectory from a seed point",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	addTraceFlags(traceCmd)
	traceCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write trajectory SVG to path")
	traceCmd.Flags().StringVar(&csvPath, "csv", "", "write trajectory CSV to path")
	traceCmd.Flags().StringVar(&jsonPath, "json", "", "write trajectory JSON to path")

	portraitCmd := &cobra.Command{
		Use:   "portrait [field]",
		Short: "trace a grid of seeds and draw the full portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  runPortrait,
	}
	addTraceFlags(portraitCmd)
	portraitCmd.Flags().IntVar(&gridX, "nx", 8, "seed grid columns")
	portraitCmd.Flags().IntVar(&gridY, "ny", 6, "seed grid rows")
	portraitCmd.Flags().IntVar(&workers, "workers", 4, "parallel trace workers")
	portraitCmd.Flags().StringVar(&svgPath, "svg", "", "write portrait SVG to path")

	liveCmd := &cobra.Command{
		Use:   "live [field]",
		Short: "animate a trajectory in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addTraceFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "list builtin vector fields",
		RunE:  listFields,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [field]",
		Short: "list available presets for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for field: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "redraw a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&width, "width", 70, "canvas width")
	showCmd.Flags().IntVar(&height, "height", 20, "canvas height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "export format: csv or svg")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output path (default run_id.format)")

	compareCmd := &cobra.Command{
		Use:   "compare [field]",
		Short: "compare RK4 against Dormand-Prince on the same seed",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}
	addTraceFlags(compareCmd)

	rootCmd.AddCommand(traceCmd, portraitCmd, liveCmd, fieldsCmd, presetsCmd,
		listCmd, showCmd, exportCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addTraceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&seedX, "x", 1.0, "seed x coordinate")
	cmd.Flags().Float64Var(&seedY, "y", 0.0, "seed y coordinate")
	cmd.Flags().IntVar(&maxSteps, "steps", 2000, "maximum accepted steps per direction")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "local error tolerance")
	cmd.Flags().Float64Var(&extent, "extent", 10.0, "half-width of the square viewport")
	cmd.Flags().IntVar(&width, "width", 70, "canvas width in cells")
	cmd.Flags().IntVar(&height, "height", 20, "canvas height in cells")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringSliceVar(&params, "param", nil, "field parameter, name=value (repeatable)")
}

// resolveSetup builds the field, seed, and trace config from the preset,
// config file, and flags, in increasing precedence.
func resolveSetup(fieldName string) (ode.VectorField, ode.Vec2, ode.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(fieldName, preset)
		if p == nil {
			return nil, ode.Vec2{}, ode.Config{}, fmt.Errorf("unknown preset %q for field %q", preset, fieldName)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, ode.Vec2{}, ode.Config{}, err
		}
		cfg = loaded
	}

	cfg.Field = fieldName
	if preset == "" && configFile == "" {
		cfg.Seed = config.SeedConfig{X: seedX, Y: seedY}
		cfg.MaxSteps = maxSteps
		cfg.Tolerance = tolerance
		cfg.Bounds = config.BoundsConfig{MinX: -extent, MinY: -extent, MaxX: extent, MaxY: extent}
	}

	for _, kv := range params {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, ode.Vec2{}, ode.Config{}, fmt.Errorf("bad --param %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, ode.Vec2{}, ode.Config{}, fmt.Errorf("bad --param value %q: %w", value, err)
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		cfg.Params[name] = v
	}

	f, err := cfg.MakeField()
	if err != nil {
		return nil, ode.Vec2{}, ode.Config{}, err
	}
	return f, cfg.SeedPoint(), cfg.TraceConfig(), nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	fieldName := args[0]
	f, seed, cfg, err := resolveSetup(fieldName)
	if err != nil {
		return err
	}

	tr, err := trace.New(nil).Bidirectional(f, seed, cfg)
	if err != nil {
		return err
	}

	fmt.Print(render.ComposePortrait([]*ode.Trajectory{tr}, cfg.Bounds, width, height))
	fmt.Printf("\n%s  seed=(%.3g, %.3g)  points=%d  steps=%d  rejected=%d  quality=%s\n",
		fieldName, seed.X, seed.Y, tr.Len(), tr.Stats.StepsTaken, tr.Stats.Rejected,
		render.QualityStyle(tr.Quality).Render(tr.Quality.String()))

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(fieldName, cfg, tr)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", id)
	}
	if svgPath != "" {
		svg := export.TrajectoriesToSVG([]*ode.Trajectory{tr}, cfg.Bounds, 800, 600)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
	}
	if csvPath != "" {
		if err := export.WriteCSVFile(csvPath, tr); err != nil {
			return err
		}
	}
	if jsonPath != "" {
		if err := export.WriteJSONFile(jsonPath, export.NewDocument(fieldName, tr, cfg)); err != nil {
			return err
		}
	}
	return nil
}

func runPortrait(cmd *cobra.Command, args []string) error {
	fieldName := args[0]
	f, _, cfg, err := resolveSetup(fieldName)
	if err != nil {
		return err
	}

	seeds := portrait.GridSeeds(cfg.Bounds, gridX, gridY)
	p, err := portrait.Generate(f, seeds, cfg, workers)
	if err != nil {
		return err
	}

	fmt.Print(render.ComposePortrait(p.Trajectories, cfg.Bounds, width, height))

	report := portrait.Summarize(f, p)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\nseeds\t%d\n", report.Seeds)
	fmt.Fprintf(w, "points\t%d\n", report.Points)
	if report.HasLinear {
		fmt.Fprintf(w, "equilibrium\t%s\n", report.Equilibrium)
	}
	for quality, n := range report.ByQuality {
		fmt.Fprintf(w, "  %s\t%d\n", quality, n)
	}
	w.Flush()

	if svgPath != "" {
		svg := export.TrajectoriesToSVG(p.Trajectories, cfg.Bounds, 800, 600)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	fieldName := args[0]
	f, seed, cfg, err := resolveSetup(fieldName)
	if err != nil {
		return err
	}
	return tui.Run(fieldName, f, seed, cfg, frameRate)
}

func listFields(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range field.Names() {
		f, err := field.New(name)
		if err != nil {
			return err
		}
		kind := "nonlinear"
		if lin, ok := f.(*field.Linear); ok {
			kind = lin.Classify().String()
		}
		fmt.Fprintf(w, "%s\t%s\n", name, kind)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tSTEPS\tQUALITY\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			run.ID, run.Field, run.Steps, run.Quality,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	times, points, err := store.LoadPoints(args[0])
	if err != nil {
		return err
	}

	tr := &ode.Trajectory{Points: points, Times: times}
	bounds := boundsFor(points)
	fmt.Print(render.ComposePortrait([]*ode.Trajectory{tr}, bounds, width, height))
	fmt.Printf("\n%s  %s  points=%d  quality=%s\n", meta.ID, meta.Field, len(points), meta.Quality)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	times, points, err := store.LoadPoints(args[0])
	if err != nil {
		return err
	}
	tr := &ode.Trajectory{Points: points, Times: times}

	path := outPath
	if path == "" {
		path = args[0] + "." + format
	}

	switch format {
	case "csv":
		if err := export.WriteCSVFile(path, tr); err != nil {
			return err
		}
	case "svg":
		svg := export.TrajectoriesToSVG([]*ode.Trajectory{tr}, boundsFor(points), 800, 600)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want csv or svg)", format)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	fieldName := args[0]
	f, seed, cfg, err := resolveSetup(fieldName)
	if err != nil {
		return err
	}

	rk4, err := trace.New(integrators.NewRK4()).Trace(f, seed, ode.Forward, cfg)
	if err != nil {
		return err
	}
	dopri, err := trace.New(nil).Trace(f, seed, ode.Forward, cfg)
	if err != nil {
		return err
	}

	n := rk4.Len()
	if dopri.Len() < n {
		n = dopri.Len()
	}
	separation := make([]float64, n)
	for i := 0; i < n; i++ {
		separation[i] = rk4.Points[i].Sub(dopri.Points[i]).Norm()
	}

	fmt.Println(asciigraph.Plot(separation,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("point separation, RK4 vs Dormand-Prince"),
	))
	fmt.Printf("\nrk4: points=%d quality=%s   dopri: points=%d quality=%s\n",
		rk4.Len(), rk4.Quality, dopri.Len(), dopri.Quality)
	return nil
}

func boundsFor(points []ode.Vec2) ode.Rect {
	if len(points) == 0 {
		return ode.DefaultConfig().Bounds
	}
	b := ode.Rect{MinX: points[0].X, MaxX: points[0].X, MinY: points[0].Y, MaxY: points[0].Y}
	for _, p := range points {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	// Pad so a flat trajectory still projects onto a valid rect.
	padX := 0.1 * (b.MaxX - b.MinX)
	padY := 0.1 * (b.MaxY - b.MinY)
	if padX == 0 {
		padX = 1
	}
	if padY == 0 {
		padY = 1
	}
	b.MinX -= padX
	b.MaxX += padX
	b.MinY -= padY
	b.MaxY += padY
	return b
}
