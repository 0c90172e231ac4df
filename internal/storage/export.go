package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/voicecanvas/internal/engine"
)

type ExportData struct {
	Run    RunMetadata         `json:"run"`
	Frames []engine.FrameStats `json:"frames"`
}

// ExportPNG copies a run's image to dst.
func (s *Store) ExportPNG(runID, dst string) error {
	src, err := s.ImagePath(runID)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ExportJSON writes a run's metadata and frames as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Frames: frames})
}
