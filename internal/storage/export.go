package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dualdiff/internal/optim"
)

// ExportData is a stored run with its trace inlined, for consumers that want
// a single JSON document.
type ExportData struct {
	RunMetadata
	Trace []optim.Iterate `json:"trace"`
}

// Export reads a stored run and writes it as indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Trace: trace})
}

func (s *Store) ExportFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.Export(file, runID)
}
