// Package analyzer delivers semantic analysis records to the canvas.
//
// A WebSocket analyzer ships the last interval of raw audio to a remote
// service and forwards each reply; a Cycle analyzer needs no service and
// rotates through the emotion palettes. Both call their sink from a single
// goroutine, latest arrival wins.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/san-kum/voicecanvas/internal/art"
)

// DefaultDescription fills in replies that carry no description.
const DefaultDescription = "Abstract art based on voice."

type Sink func(a art.Analysis)

type Analyzer interface {
	// Run delivers records to sink until ctx is cancelled.
	Run(ctx context.Context, sink Sink) error
}

// Fallback is the record delivered in place of a failed analysis.
func Fallback() art.Analysis {
	return art.Analysis{
		Emotion:     art.Neutral,
		Confidence:  0,
		Tempo:       art.TempoMedium,
		Keywords:    []string{},
		Colors:      []string{"#cccccc", "#888888", "#ffffff"},
		Description: "Neutral fallback art.",
	}
}

// Decode parses one analysis reply and fills defaults for missing fields.
func Decode(data []byte) (art.Analysis, error) {
	var a art.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return art.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if a.Emotion == "" && a.Tempo == "" && a.Colors == nil && a.Keywords == nil {
		return art.Analysis{}, fmt.Errorf("decode analysis: empty record")
	}
	if a.Keywords == nil {
		a.Keywords = []string{}
	}
	if a.Colors == nil {
		a.Colors = []string{art.DefaultColorHex}
	}
	if a.Description == "" {
		a.Description = DefaultDescription
	}
	return a, nil
}
