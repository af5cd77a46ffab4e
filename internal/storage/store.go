package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sansuarezs055/gaslab/internal/dynamo"
	"github.com/sansuarezs055/gaslab/internal/gas"
)

// Store persists runs as one directory per run under baseDir. Every run
// carries a metadata.json; trajectory runs add states.csv, gas runs add
// pressure.csv and frames.csv.
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
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator,omitempty"`
	Particles  int                `json:"particles,omitempty"`
	Mass       float64            `json:"mass,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// SaveResult writes an integrator run: metadata.json plus states.csv with
// one row per recorded state.
func (s *Store) SaveResult(model, integrator string, dt float64, seed int64, result *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Seed:       seed,
		Dt:         dt,
		Steps:      result.StepsTaken,
		Integrator: integrator,
		Metrics:    result.Metrics,
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveGasRun writes a gas run: metadata.json, the pressure series, and
// one frames.csv row per particle per recorded frame.
func (s *Store) SaveGasRun(cfg gas.Config, frames []gas.Frame, times, pressures []float64) (string, error) {
	runID := fmt.Sprintf("gas_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     "gas",
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Steps:     cfg.Steps,
		Particles: cfg.N,
		Mass:      cfg.Mass,
	}
	if len(pressures) > 0 {
		meta.Metrics = map[string]float64{
			"final_pressure": pressures[len(pressures)-1],
		}
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	if err := writePressureCSV(filepath.Join(runDir, "pressure.csv"), times, pressures); err != nil {
		return "", err
	}
	if err := writeFramesCSV(filepath.Join(runDir, "frames.csv"), frames); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writePressureCSV(path string, times, pressures []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "pressure"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(pressures[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeFramesCSV(path string, frames []gas.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"step", "particle", "x", "y", "speed"}); err != nil {
		return err
	}
	for _, f := range frames {
		for i, p := range f.Particles {
			row := []string{
				strconv.Itoa(f.Step),
				strconv.Itoa(i),
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
				strconv.FormatFloat(p.Speed, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
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

// LoadStates reads back a states.csv written by SaveResult.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return states, times, nil
}

// LoadLastFrame reads back the final frame's particles from a frames.csv
// written by SaveGasRun.
func (s *Store) LoadLastFrame(runID string) ([]gas.FrameParticle, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: run %s has no frames", runID)
	}

	lastStep := -1
	particles := make([]gas.FrameParticle, 0)
	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		if step > lastStep {
			lastStep = step
			particles = particles[:0]
		}
		if step != lastStep {
			continue
		}
		x, err1 := strconv.ParseFloat(record[2], 64)
		y, err2 := strconv.ParseFloat(record[3], 64)
		speed, err3 := strconv.ParseFloat(record[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		particles = append(particles, gas.FrameParticle{X: x, Y: y, Speed: speed})
	}

	if len(particles) == 0 {
		return nil, fmt.Errorf("storage: run %s has no frames", runID)
	}
	return particles, nil
}

// LoadPressure reads back a pressure.csv written by SaveGasRun.
func (s *Store) LoadPressure(runID string) ([]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "pressure.csv"))
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	pressures := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		pressures = append(pressures, p)
	}

	return times, pressures, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
