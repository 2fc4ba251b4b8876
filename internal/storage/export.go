package storage

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"

	"github.com/san-kum/planetfield/internal/planets"
)

type ExportData struct {
	Run    RunMetadata    `json:"run"`
	Bodies []planets.Body `json:"bodies"`
	Trace  []Sample       `json:"trace,omitempty"`
}

// Export writes a whole run as one JSON document. A run recorded
// without a trace exports without one.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	bodies, err := s.LoadBodies(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Bodies: bodies, Trace: trace})
}
