package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/bode/internal/analysis"
	"github.com/san-kum/bode/internal/export"
	"github.com/san-kum/bode/internal/response"
)

const (
	metadataFile = "metadata.json"
	responseFile = "response.csv"
	idPrefix     = "tf_"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

type RunMetadata struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Timestamp   time.Time      `json:"timestamp"`
	Numerator   []float64      `json:"numerator"`
	Denominator []float64      `json:"denominator"`
	Sweep       response.Sweep `json:"sweep"`
	Unwrap      bool           `json:"unwrap"`
	Samples     int            `json:"samples"`
	Stable      bool           `json:"stable"`
	Roots       []export.Root  `json:"roots"`
	ElapsedMS   float64        `json:"elapsed_ms"`
}

func newID() string {
	return idPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *Store) Save(res *analysis.Result) (string, error) {
	runID := newID()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        res.Name,
		Timestamp:   time.Now(),
		Numerator:   res.Numerator.Coeffs(),
		Denominator: res.Denominator.Coeffs(),
		Sweep:       res.Sweep,
		Unwrap:      res.Unwrap,
		Samples:     res.Response.Len(),
		Stable:      res.Verdict.Stable,
		Roots:       export.Roots(res.Verdict.Roots),
		ElapsedMS:   float64(res.Elapsed.Microseconds()) / 1000,
	}

	if err := writeRun(runDir, &meta, res.Response); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			log.Warn().Err(rmErr).Str("id", runID).Msg("failed to remove partial run")
		}
		return "", err
	}

	log.Info().Str("id", runID).Str("name", res.Name).Int("samples", meta.Samples).Msg("analysis saved")
	return runID, nil
}

// writeFile is swapped in tests to simulate write failures.
var writeFile = os.WriteFile

func writeRun(runDir string, meta *RunMetadata, resp *response.Response) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.CSV(&buf, resp); err != nil {
		return err
	}
	return writeFile(filepath.Join(runDir, responseFile), buf.Bytes(), 0644)
}

// List returns saved runs oldest first. Directories without readable
// metadata are skipped.
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
			log.Debug().Err(err).Str("dir", entry.Name()).Msg("skipping run")
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadResponse(runID string) (*response.Response, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, responseFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return export.ReadCSV(file)
}
