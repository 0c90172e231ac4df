package analyzer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/voicecanvas/internal/art"
)

var emotionTempo = map[art.Emotion]art.Tempo{
	art.Happy:   art.TempoMedium,
	art.Sad:     art.TempoSlow,
	art.Angry:   art.TempoFast,
	art.Calm:    art.TempoSlow,
	art.Neutral: art.TempoMedium,
	art.Excited: art.TempoFast,
	art.Anxious: art.TempoFast,
}

var emotionKeywords = map[art.Emotion][]string{
	art.Happy:   {"sunny", "bounce"},
	art.Sad:     {"rain", "long line"},
	art.Angry:   {"angry", "fire"},
	art.Calm:    {"sea", "breath"},
	art.Neutral: {"plain", "voice"},
	art.Excited: {"sharp", "spark"},
	art.Anxious: {"code", "jitter"},
}

// Cycle is an offline analyzer that rotates through the emotions, each with
// its palette, a matching tempo and keywords.
type Cycle struct {
	Interval time.Duration
	rng      *rand.Rand
	next     int
}

func NewCycle(interval time.Duration, rng *rand.Rand) *Cycle {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Cycle{Interval: interval, rng: rng}
}

// Next returns the record for the next emotion in rotation.
func (c *Cycle) Next() art.Analysis {
	e := art.Emotions[c.next%len(art.Emotions)]
	c.next++
	tempo := emotionTempo[e]
	keywords := append([]string(nil), emotionKeywords[e]...)
	return art.Analysis{
		Emotion:     e,
		Confidence:  50 + float64(c.rng.Intn(51)),
		Tempo:       tempo,
		Keywords:    keywords,
		Colors:      art.EmotionPalette(e),
		Description: fmt.Sprintf("%s voice at a %s pace.", e, tempo),
	}
}

func (c *Cycle) Run(ctx context.Context, sink Sink) error {
	interval := c.Interval
	if interval <= 0 {
		interval = 2500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sink(c.Next())
		}
	}
}
