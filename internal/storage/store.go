// Package storage persists trace runs as flat files: one directory per
// run holding metadata.json and points.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shelvean/phaseflow/internal/ode"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	Timestamp time.Time `json:"timestamp"`
	Seed      []float64 `json:"seed"`
	MaxSteps  int       `json:"max_steps"`
	Tolerance float64   `json:"tolerance"`
	Quality   string    `json:"quality"`
	Steps     int       `json:"steps"`
	Rejected  int       `json:"rejected"`
}

// Save writes one trajectory as a new run and returns its ID.
func (s *Store) Save(fieldName string, cfg ode.Config, tr *ode.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", fieldName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Field:     fieldName,
		Timestamp: time.Now(),
		Seed:      []float64{tr.Seed().X, tr.Seed().Y},
		MaxSteps:  cfg.MaxSteps,
		Tolerance: cfg.Tolerance,
		Quality:   tr.Quality.String(),
		Steps:     tr.Stats.StepsTaken,
		Rejected:  tr.Stats.Rejected,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"t", "x", "y"}); err != nil {
		return "", err
	}
	for i, p := range tr.Points {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'g', -1, 64),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPoints reads a saved trajectory back as times and points.
func (s *Store) LoadPoints(runID string) ([]float64, []ode.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []ode.Vec2{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	points := make([]ode.Vec2, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: bad time %q: %w", rec[0], err)
		}
		x, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: bad x %q: %w", rec[1], err)
		}
		y, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: bad y %q: %w", rec[2], err)
		}
		times = append(times, t)
		points = append(points, ode.Vec2{X: x, Y: y})
	}

	return times, points, nil
}
