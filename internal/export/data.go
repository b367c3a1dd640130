// Package export serializes trajectories to SVG, CSV, and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/shelvean/phaseflow/internal/ode"
)

// Document is the JSON export shape for one trace run.
type Document struct {
	Field     string       `json:"field"`
	Seed      [2]float64   `json:"seed"`
	Quality   string       `json:"quality"`
	Steps     int          `json:"steps"`
	Rejected  int          `json:"rejected"`
	Times     []float64    `json:"times"`
	Points    [][2]float64 `json:"points"`
	Bounds    [4]float64   `json:"bounds"`
	Tolerance float64      `json:"tolerance"`
}

// NewDocument flattens a trajectory into the export shape.
func NewDocument(fieldName string, tr *ode.Trajectory, cfg ode.Config) Document {
	doc := Document{
		Field:     fieldName,
		Seed:      [2]float64{tr.Seed().X, tr.Seed().Y},
		Quality:   tr.Quality.String(),
		Steps:     tr.Stats.StepsTaken,
		Rejected:  tr.Stats.Rejected,
		Times:     tr.Times,
		Points:    make([][2]float64, tr.Len()),
		Bounds:    [4]float64{cfg.Bounds.MinX, cfg.Bounds.MinY, cfg.Bounds.MaxX, cfg.Bounds.MaxY},
		Tolerance: cfg.Tolerance,
	}
	for i, p := range tr.Points {
		doc.Points[i] = [2]float64{p.X, p.Y}
	}
	return doc
}

// WriteJSON writes the document indented to w.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSONFile writes the document to path.
func WriteJSONFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, doc)
}

// WriteCSV writes t,x,y rows with a header.
func WriteCSV(w io.Writer, tr *ode.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}
	for i, p := range tr.Points {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'g', -1, 64),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the trajectory to path.
func WriteCSVFile(path string, tr *ode.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, tr)
}
