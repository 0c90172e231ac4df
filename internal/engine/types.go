package engine

import (
	"image/color"
	"math/rand"

	"github.com/san-kum/voicecanvas/internal/art"
)

const (
	// DefaultFPS is the tick rate of a Loop created with a non-positive rate.
	DefaultFPS = 60
	// NeonGlowBlur is the shadow blur radius of neon strokes.
	NeonGlowBlur = 10
	// WatercolorMaxAlpha is the alpha byte of a freshly spawned watercolor blot.
	WatercolorMaxAlpha = 50
)

// neonOverlay is painted over the whole surface each neon frame, fading trails.
var neonOverlay = color.NRGBA{R: 15, G: 15, B: 17, A: 26}

// FrameStats summarises one tick of the renderer.
type FrameStats struct {
	Frame      int
	Volume     float64
	Spawned    int
	Removed    int
	Population int
	Style      art.Style
	Recording  bool
	// Skipped is set when the surface had no area and nothing was drawn.
	Skipped bool
}

type Observer interface {
	OnFrame(s FrameStats)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s FrameStats)

func (f ObserverFunc) OnFrame(s FrameStats) { f(s) }

// Status is a point-in-time view of the simulation context.
type Status struct {
	Style       art.Style
	Recording   bool
	Volume      float64
	Particles   int
	History     int
	CanUndo     bool
	Width       int
	Height      int
	Frame       int
	Config      art.SimConfig
	Analysis    art.Analysis
	HasAnalysis bool
}

type Options struct {
	Width  int
	Height int
	Style  art.Style
	// HistoryCapacity defaults to history.Capacity.
	HistoryCapacity int
	// Rand drives spawning and draw jitter. A time-seeded source is used when nil.
	Rand *rand.Rand
}
