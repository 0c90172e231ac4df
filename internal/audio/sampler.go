package audio

import (
	"context"
	"time"
)

// Sampler pushes a source's level into sink on every tick.
type Sampler struct {
	src      Source
	sink     func(float64)
	interval time.Duration
}

func NewSampler(src Source, sink func(float64), interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Sampler{src: src, sink: sink, interval: interval}
}

// Run samples until ctx is cancelled. A final zero is pushed on exit.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.sink(0)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sink(s.src.Level())
		}
	}
}
