package engine

import (
	"image"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/history"
	"github.com/san-kum/voicecanvas/internal/particles"
	"github.com/san-kum/voicecanvas/internal/raster"
)

// Renderer is the simulation context: it owns the surface, the particle
// store, the undo history and the current SimConfig. Frame and every control
// entry point serialize on mu, so a tick never overlaps a control call.
type Renderer struct {
	mu sync.Mutex

	surface *raster.Surface
	store   *particles.Store
	history *history.Buffer[*image.RGBA]
	rng     *rand.Rand

	cfg         art.SimConfig
	analysis    art.Analysis
	hasAnalysis bool
	style       art.Style
	volume      float64
	recording   bool

	clearReq, clearSeen uint64
	undoReq, undoSeen   uint64

	frame     int
	observers []Observer
	onUndo    []func(bool)
}

func New(opts Options) *Renderer {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	style := opts.Style
	if !validStyle(style) {
		style = art.DefaultStyle
	}
	return &Renderer{
		surface: raster.New(opts.Width, opts.Height),
		store:   particles.NewStore(rng),
		history: history.New[*image.RGBA](opts.HistoryCapacity),
		rng:     rng,
		cfg:     art.DefaultConfig(),
		style:   style,
	}
}

func (r *Renderer) AddObserver(o Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, o)
	r.mu.Unlock()
}

// Frame runs one tick: pending clear/undo edges, compositing setup, spawn,
// advance and draw. Observers are notified after the lock is released.
func (r *Renderer) Frame() FrameStats {
	r.mu.Lock()
	n := r.reconcileLocked()
	stats := r.frameLocked()
	observers := r.observers
	r.mu.Unlock()

	r.emitUndo(n)
	for _, o := range observers {
		o.OnFrame(stats)
	}
	return stats
}

func (r *Renderer) frameLocked() FrameStats {
	r.frame++
	stats := FrameStats{
		Frame:     r.frame,
		Volume:    r.volume,
		Style:     r.style,
		Recording: r.recording,
	}
	if !r.surface.Ready() {
		stats.Skipped = true
		stats.Population = r.store.Len()
		return stats
	}

	r.composite()

	if r.recording {
		w, h := r.surface.Size()
		stats.Spawned = r.store.Spawn(r.volume, r.cfg, float64(w), float64(h))
	}
	stats.Removed = r.store.Advance()
	r.store.ForEachAlive(r.draw)
	stats.Population = r.store.Len()
	return stats
}

// composite selects the blend mode for this frame's particles.
func (r *Renderer) composite() {
	s := r.surface
	switch r.style {
	case art.Neon:
		s.SetBlend(raster.SourceOver)
		s.Fill(neonOverlay)
		s.SetBlend(raster.Lighter)
	case art.Watercolor:
		s.SetBlend(raster.Multiply)
	default:
		s.SetBlend(raster.SourceOver)
	}
}

func (r *Renderer) draw(p *particles.Particle) {
	s := r.surface
	c := p.Color.Opaque()

	switch r.style {
	case art.Abstract:
		switch p.Shape {
		case art.ShapeSquare:
			s.FillRect(p.X, p.Y, p.Size, p.Size, c)
		case art.ShapeLine:
			s.StrokeLine(p.X, p.Y, p.X-p.VX*10, p.Y-p.VY*10, p.Size/2, c, nil)
		default:
			s.FillCircle(p.X, p.Y, p.Size, c)
		}
	case art.Neon:
		// Glow is per stroke, never carried to the next particle.
		s.StrokeLine(p.X, p.Y, p.X-p.VX*2, p.Y-p.VY*2, p.Size/3, c,
			&raster.Glow{Blur: NeonGlowBlur, Color: c})
	case art.Impressionist:
		ox := (r.rng.Float64() - 0.5) * 10
		oy := (r.rng.Float64() - 0.5) * 10
		s.FillRect(p.X+ox, p.Y+oy, p.Size, p.Size/2, c)
	default:
		bleed := r.rng.Float64() * 2
		s.FillCircle(p.X+bleed, p.Y+bleed, p.Size*2, p.Color.NRGBA(watercolorAlpha(p.Alpha())))
	}
}

func watercolorAlpha(alpha float64) uint8 {
	a := math.Floor(alpha * WatercolorMaxAlpha)
	if a < 0 {
		return 0
	}
	return uint8(a)
}

// undoNote carries an onUndoPossible notification out of the critical section.
type undoNote struct {
	fire    bool
	canUndo bool
}

// reconcileLocked applies clear and undo edges that have not been seen yet.
// Undo edges wait while the surface has no area.
func (r *Renderer) reconcileLocked() undoNote {
	var n undoNote
	if r.clearSeen != r.clearReq {
		r.clearSeen = r.clearReq
		r.clearLocked()
		n = undoNote{fire: true, canUndo: false}
	}
	if r.undoSeen != r.undoReq && r.surface.Ready() {
		for ; r.undoSeen < r.undoReq; r.undoSeen++ {
			snap, ok := r.history.Pop()
			if !ok {
				continue
			}
			r.surface.Put(snap)
			n = undoNote{fire: true, canUndo: r.history.CanUndo()}
		}
		r.undoSeen = r.undoReq
	}
	return n
}

func (r *Renderer) clearLocked() {
	r.store.Reset()
	r.history.Clear()
	if r.style == art.Neon {
		r.surface.Reset(image.Transparent)
	} else {
		r.surface.Reset(image.White)
	}
}

func (r *Renderer) emitUndo(n undoNote) {
	if !n.fire {
		return
	}
	r.mu.Lock()
	fns := r.onUndo
	r.mu.Unlock()
	for _, fn := range fns {
		fn(n.canUndo)
	}
}

func validStyle(s art.Style) bool {
	for _, v := range art.Styles {
		if v == s {
			return true
		}
	}
	return false
}
