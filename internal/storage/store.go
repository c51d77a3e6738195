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

	"github.com/san-kum/dualdiff/internal/optim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
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

// RunInputs describes how a run was configured.
type RunInputs struct {
	Problem    string    `json:"problem"`
	Method     string    `json:"method"`
	Start      []float64 `json:"start"`
	Tolerance  float64   `json:"tolerance"`
	MaxIter    int       `json:"max_iter"`
	Dt         float64   `json:"dt,omitempty"`
	Integrator string    `json:"integrator,omitempty"`
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RunInputs
	X          []float64 `json:"x"`
	Value      float64   `json:"value"`
	Gradient   []float64 `json:"gradient"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
}

func (s *Store) Save(in RunInputs, result *optim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", in.Problem, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		RunInputs:  in,
		X:          result.X,
		Value:      result.Value,
		Gradient:   result.Gradient,
		Iterations: result.Iterations,
		Converged:  result.Converged,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrace(filepath.Join(runDir, traceFile), result.Trace); err != nil {
		return "", err
	}
	return runID, nil
}

func writeTrace(path string, trace []optim.Iterate) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if len(trace) > 0 {
		header := []string{"iter", "value", "grad_norm", "step"}
		for i := range trace[0].X {
			header = append(header, fmt.Sprintf("x%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for _, it := range trace {
		row := []string{
			strconv.Itoa(it.Iter),
			formatFloat(it.Value),
			formatFloat(it.GradNorm),
			formatFloat(it.Step),
		}
		for _, v := range it.X {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads back the iterates written by Save.
func (s *Store) LoadTrace(runID string) ([]optim.Iterate, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []optim.Iterate{}, nil
	}

	trace := make([]optim.Iterate, 0, len(records)-1)
	for line, record := range records[1:] {
		it, err := parseIterate(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", traceFile, line+2, err)
		}
		trace = append(trace, it)
	}
	return trace, nil
}

func parseIterate(record []string) (optim.Iterate, error) {
	if len(record) < 4 {
		return optim.Iterate{}, fmt.Errorf("expected at least 4 fields, got %d", len(record))
	}

	iter, err := strconv.Atoi(record[0])
	if err != nil {
		return optim.Iterate{}, err
	}
	nums := make([]float64, len(record)-1)
	for i, field := range record[1:] {
		if nums[i], err = strconv.ParseFloat(field, 64); err != nil {
			return optim.Iterate{}, err
		}
	}

	return optim.Iterate{
		Iter:     iter,
		Value:    nums[0],
		GradNorm: nums[1],
		Step:     nums[2],
		X:        nums[3:],
	}, nil
}
