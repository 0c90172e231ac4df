package engine

import (
	"context"
	"sync"
	"time"
)

// Framer is anything that can be ticked by a Loop.
type Framer interface {
	Frame() FrameStats
}

// Loop ticks a Framer at a fixed rate. A tick runs to completion before the
// next one is scheduled; late ticks are dropped rather than queued.
type Loop struct {
	target   Framer
	interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	frames int
}

func NewLoop(target Framer, fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		target:   target,
		interval: time.Second / time.Duration(fps),
		stop:     make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled or Stop is called. It returns ctx.Err()
// on cancellation and nil after Stop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-ticker.C:
		}

		l.target.Frame()

		l.mu.Lock()
		l.frames++
		l.mu.Unlock()

		select {
		case <-l.stop:
			return nil
		default:
		}
	}
}

// Stop ends Run before its next tick. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Frames is the number of ticks completed so far.
func (l *Loop) Frames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *Loop) Interval() time.Duration { return l.interval }
