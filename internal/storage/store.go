package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/planets"
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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Ratio     float64            `json:"ratio"`
	Frames    int                `json:"frames"`
	Bodies    int                `json:"bodies"`
	Config    config.Config      `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

var bodyHeader = []string{
	"index", "x", "y", "radius", "depth", "vx", "vy", "rotation", "spin",
	"ring", "ring_tilt", "hue_jitter", "highlight", "mid", "shadow", "fade",
}

// Save writes a run directory holding metadata.json, the initial
// population in bodies.csv and the sampled motion in trace.csv.
func (s *Store) Save(meta RunMetadata, bodies []planets.Body, trace *Trace) (string, error) {
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, meta.Timestamp.UnixMilli())
	meta.Bodies = len(bodies)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(bodies)+1)
	rows = append(rows, bodyHeader)
	for i, b := range bodies {
		rows = append(rows, []string{
			strconv.Itoa(i),
			formatFloat(b.X), formatFloat(b.Y), formatFloat(b.Radius), formatFloat(b.Depth),
			formatFloat(b.VX), formatFloat(b.VY), formatFloat(b.Rotation), formatFloat(b.Spin),
			strconv.FormatBool(b.Ring), formatFloat(b.RingTilt), formatFloat(b.HueJitter),
			b.Palette[0], b.Palette[1], b.Palette[2], b.Palette[3],
		})
	}
	if err := writeCSV(filepath.Join(runDir, "bodies.csv"), rows); err != nil {
		return "", err
	}

	if trace != nil {
		if err := writeCSV(filepath.Join(runDir, "trace.csv"), trace.records()); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

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

// LoadBodies reads back the initial population of a run.
func (s *Store) LoadBodies(runID string) ([]planets.Body, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "bodies.csv"))
	if err != nil {
		return nil, err
	}

	bodies := make([]planets.Body, 0, len(records))
	for i, record := range records {
		if len(record) != len(bodyHeader) {
			return nil, fmt.Errorf("bodies.csv line %d: expected %d fields, got %d", i+2, len(bodyHeader), len(record))
		}
		var f [10]float64
		for j, col := range []int{1, 2, 3, 4, 5, 6, 7, 8, 10, 11} {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, fmt.Errorf("bodies.csv line %d: %s: %w", i+2, bodyHeader[col], err)
			}
			f[j] = v
		}
		ring, err := strconv.ParseBool(record[9])
		if err != nil {
			return nil, fmt.Errorf("bodies.csv line %d: ring: %w", i+2, err)
		}
		bodies = append(bodies, planets.Body{
			X: f[0], Y: f[1], Radius: f[2], Depth: f[3],
			VX: f[4], VY: f[5], Rotation: f[6], Spin: f[7],
			Ring: ring, RingTilt: f[8], HueJitter: f[9],
			Palette: planets.Palette{record[12], record[13], record[14], record[15]},
		})
	}
	return bodies, nil
}

// LoadTrace reads back the sampled positions of a run.
func (s *Store) LoadTrace(runID string) ([]Sample, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(records))
	for _, record := range records {
		if len(record) < 5 {
			continue
		}
		frame, err1 := strconv.Atoi(record[0])
		body, err2 := strconv.Atoi(record[1])
		x, err3 := strconv.ParseFloat(record[2], 64)
		y, err4 := strconv.ParseFloat(record[3], 64)
		rot, err5 := strconv.ParseFloat(record[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		samples = append(samples, Sample{Frame: frame, Body: body, X: x, Y: y, Rotation: rot})
	}
	return samples, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

// readCSV returns every record after the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
