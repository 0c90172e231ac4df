package metrics

import (
	"github.com/san-kum/voicecanvas/internal/engine"
	"github.com/san-kum/voicecanvas/internal/particles"
)

type SpawnTotal struct {
	name    string
	spawned int
}

func NewSpawnTotal() *SpawnTotal {
	return &SpawnTotal{name: "spawned_total"}
}

func (s *SpawnTotal) Name() string { return s.name }

func (s *SpawnTotal) Observe(f engine.FrameStats) { s.spawned += f.Spawned }

func (s *SpawnTotal) Value() float64 { return float64(s.spawned) }

func (s *SpawnTotal) Reset() { s.spawned = 0 }

// Activity is the fraction of frames that were recording above the spawn threshold.
type Activity struct {
	name    string
	active  int
	samples int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(f engine.FrameStats) {
	a.samples++
	if f.Recording && f.Volume > particles.SpawnThreshold {
		a.active++
	}
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.active) / float64(a.samples)
}

func (a *Activity) Reset() {
	a.active = 0
	a.samples = 0
}
