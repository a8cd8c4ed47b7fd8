package storage

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/export"
	"github.com/san-kum/lensim/internal/lens"
)

const (
	metadataFile = "metadata.json"
	frameFile    = "frame.png"
	profileFile  = "profile.csv"
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

type SnapshotMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Params    lens.Params        `json:"params"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Layers    int                `json:"layers"`
	Seed      int64              `json:"seed"`
	Sources   []string           `json:"sources,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Snapshot is everything saved for one run.
type Snapshot struct {
	Params  lens.Params
	Frame   *image.RGBA
	Profile *analysis.Profile
	Layers  int
	Seed    int64
	Sources []string
}

var seq atomic.Uint64

// Save writes metadata.json, frame.png and profile.csv under a new run id.
func (s *Store) Save(snap Snapshot) (string, error) {
	model := snap.Params.Model.String()
	runID := fmt.Sprintf("%s_%s_%03d", model, time.Now().Format("20060102T150405"), seq.Add(1)%1000)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := SnapshotMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Params:    snap.Params,
		Layers:    snap.Layers,
		Seed:      snap.Seed,
		Sources:   snap.Sources,
		Metrics:   map[string]float64{},
	}
	if snap.Frame != nil {
		meta.Width = snap.Frame.Bounds().Dx()
		meta.Height = snap.Frame.Bounds().Dy()
	}
	if snap.Profile != nil {
		meta.Metrics["peak_r"] = snap.Profile.Peak.R
		meta.Metrics["peak_magnitude"] = snap.Profile.Peak.Magnitude
		if r, ok := snap.Profile.CompensationRadius(); ok {
			meta.Metrics["compensation_r"] = r
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if snap.Frame != nil {
		if err := writeFile(filepath.Join(runDir, frameFile), func(f *os.File) error {
			return png.Encode(f, snap.Frame)
		}); err != nil {
			return "", err
		}
	}

	if snap.Profile != nil {
		if err := writeFile(filepath.Join(runDir, profileFile), func(f *os.File) error {
			return export.WriteProfileCSV(f, snap.Profile)
		}); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]SnapshotMetadata, 0)
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

func (s *Store) Load(runID string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrame(runID string) (image.Image, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, frameFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func (s *Store) LoadProfile(runID string) (*analysis.Profile, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, profileFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadProfileCSV(f, meta.Params.Model)
}

// Path returns the directory of a run.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.baseDir, runID)
}
