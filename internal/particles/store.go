package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/voicecanvas/internal/art"
)

const (
	// SpawnThreshold is the volume a frame must exceed before anything spawns.
	SpawnThreshold = 0.05
	// SpawnPerVolume scales volume into a per-frame spawn count.
	SpawnPerVolume = 5
	// Lifetime is the life and maxLife of every spawned particle, in frames.
	Lifetime = 100
	// SizeDecay is applied to size on every advance.
	SizeDecay = 0.98
	// MinSize is the size below which a particle is culled.
	MinSize = 0.5
)

// Particle is an ephemeral drawn element. Shape and Color never change after spawn.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Color   art.Color
	Life    int
	MaxLife int
	Shape   art.Shape
}

// Alpha is the linear fade-out factor life/maxLife.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

func (p *Particle) expired() bool {
	return p.Life <= 0 || p.Size < MinSize
}

// Store owns the live particle population.
// Population is unbounded; spawning is volume-gated and particles self-terminate.
type Store struct {
	p   []Particle
	rng *rand.Rand
}

func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Store{
		p:   make([]Particle, 0, 256),
		rng: rng,
	}
}

// SpawnCount is the number of particles a frame at the given volume produces.
func SpawnCount(volume float64) int {
	if volume <= SpawnThreshold {
		return 0
	}
	return int(math.Floor(volume * SpawnPerVolume))
}

// Spawn adds SpawnCount(volume) particles uniformly over a width x height surface.
// It returns how many were added.
func (s *Store) Spawn(volume float64, cfg art.SimConfig, width, height float64) int {
	n := SpawnCount(volume)
	if n == 0 {
		return 0
	}
	palette := cfg.Palette
	if len(palette) == 0 {
		palette = []art.Color{art.White}
	}
	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * math.Pi * 2
		speed := s.rng.Float64() * 5 * cfg.SpeedMultiplier * (volume * 2)
		s.Add(Particle{
			X:       s.rng.Float64() * width,
			Y:       s.rng.Float64() * height,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Size:    (s.rng.Float64()*20 + 5) * (volume * 3),
			Color:   palette[s.rng.Intn(len(palette))],
			Life:    Lifetime,
			MaxLife: Lifetime,
			Shape:   cfg.ShapeHint,
		})
	}
	return n
}

// Add appends a particle as-is.
func (s *Store) Add(p Particle) { s.p = append(s.p, p) }

// Advance steps every particle by one frame and culls the expired ones.
// Survivors keep their relative order. It returns the number removed.
func (s *Store) Advance() int {
	kept := s.p[:0]
	for i := range s.p {
		p := s.p[i]
		p.Life--
		p.X += p.VX
		p.Y += p.VY
		p.Size *= SizeDecay
		if p.expired() {
			continue
		}
		kept = append(kept, p)
	}
	removed := len(s.p) - len(kept)
	// Drop stale tail entries so their colors can be collected.
	for i := len(kept); i < len(s.p); i++ {
		s.p[i] = Particle{}
	}
	s.p = kept
	return removed
}

// ForEachAlive calls fn for every live particle in array order.
func (s *Store) ForEachAlive(fn func(p *Particle)) {
	for i := range s.p {
		fn(&s.p[i])
	}
}

func (s *Store) Len() int { return len(s.p) }

// Reset drops every particle.
func (s *Store) Reset() {
	for i := range s.p {
		s.p[i] = Particle{}
	}
	s.p = s.p[:0]
}
