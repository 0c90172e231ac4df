package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/engine"
)

const (
	metaFile   = "metadata.json"
	framesFile = "frames.csv"
	artFile    = "art.png"
)

var ErrNoImage = errors.New("storage: run has no image")

// PNGEncoder is anything that can write the finished canvas, such as *engine.Renderer.
type PNGEncoder interface {
	EncodePNG(w io.Writer) error
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Source    string             `json:"source"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Style     art.Style          `json:"style"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	FPS       int                `json:"fps"`
	Frames    int                `json:"frames"`
	Analysis  *art.Analysis      `json:"analysis,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
	HasImage  bool               `json:"has_image"`
}

// Save writes a run directory holding the metadata, the per-frame series and,
// when img is non-nil, the canvas as PNG. It returns the new run ID.
func (s *Store) Save(meta RunMetadata, frames []engine.FrameStats, img PNGEncoder) (string, error) {
	name := meta.Name
	if name == "" {
		name = "canvas"
	}
	runID := fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Name = name
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)

	if img != nil {
		if err := writePNG(filepath.Join(runDir, artFile), img); err != nil {
			return "", fmt.Errorf("save %s: %w", runID, err)
		}
		meta.HasImage = true
	}

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), frames); err != nil {
		return "", err
	}
	return runID, nil
}

func writePNG(path string, img PNGEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := img.EncodePNG(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
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

var frameHeader = []string{"frame", "volume", "spawned", "removed", "population", "style", "recording", "skipped"}

func writeFrames(path string, frames []engine.FrameStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Frame),
			strconv.FormatFloat(fr.Volume, 'f', 6, 64),
			strconv.Itoa(fr.Spawned),
			strconv.Itoa(fr.Removed),
			strconv.Itoa(fr.Population),
			string(fr.Style),
			strconv.FormatBool(fr.Recording),
			strconv.FormatBool(fr.Skipped),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("load %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the per-frame series. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]engine.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
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
		return []engine.FrameStats{}, nil
	}

	frames := make([]engine.FrameStats, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(frameHeader) {
			continue
		}
		fr, err := parseFrame(rec)
		if err != nil {
			continue
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseFrame(rec []string) (engine.FrameStats, error) {
	var (
		fr   engine.FrameStats
		err  error
		errs []error
	)
	fr.Frame, err = strconv.Atoi(rec[0])
	errs = append(errs, err)
	fr.Volume, err = strconv.ParseFloat(rec[1], 64)
	errs = append(errs, err)
	fr.Spawned, err = strconv.Atoi(rec[2])
	errs = append(errs, err)
	fr.Removed, err = strconv.Atoi(rec[3])
	errs = append(errs, err)
	fr.Population, err = strconv.Atoi(rec[4])
	errs = append(errs, err)
	fr.Style = art.Style(rec[5])
	fr.Recording, err = strconv.ParseBool(rec[6])
	errs = append(errs, err)
	fr.Skipped, err = strconv.ParseBool(rec[7])
	errs = append(errs, err)
	return fr, errors.Join(errs...)
}

// ImagePath returns the path of a run's PNG, or ErrNoImage.
func (s *Store) ImagePath(runID string) (string, error) {
	path := filepath.Join(s.baseDir, runID, artFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoImage, runID)
		}
		return "", err
	}
	return path, nil
}
