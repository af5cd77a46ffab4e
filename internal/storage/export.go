package storage

import (
	"encoding/json"
	"io"
	"os"
)

// RunExport is the self-contained JSON form of one stored run.
type RunExport struct {
	Metadata  RunMetadata `json:"metadata"`
	Times     []float64   `json:"times,omitempty"`
	States    [][]float64 `json:"states,omitempty"`
	Pressures []float64   `json:"pressures,omitempty"`
}

// ExportJSON writes a run as one JSON document. Gas runs carry the
// pressure series, trajectory runs the state series.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	export := RunExport{Metadata: *meta}
	if meta.Model == "gas" {
		times, pressures, err := s.LoadPressure(runID)
		if err != nil {
			return err
		}
		export.Times = times
		export.Pressures = pressures
	} else {
		states, times, err := s.LoadStates(runID)
		if err != nil {
			return err
		}
		export.Times = times
		export.States = states
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

// ExportJSONFile is ExportJSON to a path, "-" meaning stdout.
func (s *Store) ExportJSONFile(runID, path string) error {
	if path == "-" {
		return s.ExportJSON(runID, os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(runID, file)
}
