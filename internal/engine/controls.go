package engine

import (
	"image"
	"io"
	"math"

	"github.com/san-kum/voicecanvas/internal/art"
)

// Controls is the entry surface external collaborators use to steer the
// canvas: user actions, the volume stream, analysis arrivals and host resizes.
type Controls interface {
	SetStyle(s art.Style)
	RequestClear()
	RequestUndo()
	OnAnalysisUpdate(a art.Analysis)
	OnVolumeSample(v float64)
	OnRecordingToggle(recording bool)
	Resize(width, height int)
	CanUndo() bool
	OnUndoPossible(fn func(canUndo bool))
	Snapshot() *image.RGBA
	EncodePNG(w io.Writer) error
	Status() Status
}

var _ Controls = (*Renderer)(nil)

// SetStyle switches the drawing style. Unknown styles fall back to the default.
func (r *Renderer) SetStyle(s art.Style) {
	if !validStyle(s) {
		s = art.DefaultStyle
	}
	r.mu.Lock()
	r.style = s
	r.mu.Unlock()
}

// RequestClear records a clear edge and applies it right away.
func (r *Renderer) RequestClear() {
	r.mu.Lock()
	r.clearReq++
	n := r.reconcileLocked()
	r.mu.Unlock()
	r.emitUndo(n)
}

// RequestUndo records an undo edge. It is applied right away when the surface
// has area, otherwise at the first frame that does.
func (r *Renderer) RequestUndo() {
	r.mu.Lock()
	r.undoReq++
	n := r.reconcileLocked()
	r.mu.Unlock()
	r.emitUndo(n)
}

// OnAnalysisUpdate replaces the simulation config. The latest call wins.
func (r *Renderer) OnAnalysisUpdate(a art.Analysis) {
	cfg := art.Resolve(a)
	r.mu.Lock()
	r.cfg = cfg
	r.analysis = a
	r.hasAnalysis = true
	r.mu.Unlock()
}

// OnVolumeSample stores v, clamped to [0,1], for the next spawn phase.
func (r *Renderer) OnVolumeSample(v float64) {
	switch {
	case math.IsNaN(v) || v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	r.mu.Lock()
	r.volume = v
	r.mu.Unlock()
}

// OnRecordingToggle sets the recording flag. A transition to stopped pushes
// one snapshot of the surface onto the history.
func (r *Renderer) OnRecordingToggle(recording bool) {
	r.mu.Lock()
	stopped := r.recording && !recording
	r.recording = recording
	var n undoNote
	if stopped {
		if snap := r.surface.Snapshot(); snap != nil {
			r.history.Push(snap)
			n = undoNote{fire: true, canUndo: true}
		}
	}
	r.mu.Unlock()
	r.emitUndo(n)
}

// Resize reallocates the surface and stretches the existing content over it.
// Particle coordinates are left as they are.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	r.surface.Resize(width, height)
	n := r.reconcileLocked()
	r.mu.Unlock()
	r.emitUndo(n)
}

func (r *Renderer) CanUndo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.CanUndo()
}

// OnUndoPossible registers fn to be told whenever undo availability is reported.
func (r *Renderer) OnUndoPossible(fn func(canUndo bool)) {
	r.mu.Lock()
	r.onUndo = append(r.onUndo, fn)
	r.mu.Unlock()
}

// Snapshot returns a copy of the current raster, or nil when the surface has no area.
func (r *Renderer) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface.Snapshot()
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface.EncodePNG(w)
}

func (r *Renderer) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, h := r.surface.Size()
	return Status{
		Style:       r.style,
		Recording:   r.recording,
		Volume:      r.volume,
		Particles:   r.store.Len(),
		History:     r.history.Len(),
		CanUndo:     r.history.CanUndo(),
		Width:       w,
		Height:      h,
		Frame:       r.frame,
		Config:      r.cfg,
		Analysis:    r.analysis,
		HasAnalysis: r.hasAnalysis,
	}
}
