// Package automation replays scripted canvas sessions without a window.
package automation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/voicecanvas/internal/analyzer"
	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/engine"
	"github.com/san-kum/voicecanvas/internal/metrics"
)

type Result struct {
	Renderer *engine.Renderer
	Seed     int64
	Frames   int
	Metrics  map[string]float64
	Series   []engine.FrameStats
}

// RunScenario drives a fresh renderer through sc, one Frame per scenario frame.
func RunScenario(ctx context.Context, sc *Scenario, observers ...engine.Observer) (*Result, error) {
	seed := sc.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	style, err := art.ParseStyle(sc.Style)
	if err != nil {
		return nil, err
	}

	r := engine.New(engine.Options{
		Width:  sc.Width,
		Height: sc.Height,
		Style:  style,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	collector := metrics.NewCollector(0)
	r.AddObserver(collector)
	for _, o := range observers {
		r.AddObserver(o)
	}

	cycle := analyzer.NewCycle(0, rand.New(rand.NewSource(seed)))
	frames := 0
	for f, events := range sc.timeline() {
		select {
		case <-ctx.Done():
			return partial(r, seed, frames, collector), ctx.Err()
		default:
		}

		for _, i := range events {
			if err := Apply(r, sc.Events[i], cycle); err != nil {
				ev := sc.Events[i]
				return partial(r, seed, frames, collector), &StepError{Step: i, Frame: f, Action: ev.Action, Err: err}
			}
		}
		r.Frame()
		frames++
	}

	return partial(r, seed, frames, collector), nil
}

func partial(r *engine.Renderer, seed int64, frames int, c *metrics.Collector) *Result {
	return &Result{
		Renderer: r,
		Seed:     seed,
		Frames:   frames,
		Metrics:  c.Values(),
		Series:   c.Series(),
	}
}

// Apply performs one event through the control surface. Emotion events use
// cycle to build a record with that emotion's palette.
func Apply(c engine.Controls, ev Event, cycle *analyzer.Cycle) error {
	switch ev.Action {
	case ActionRecord:
		c.OnRecordingToggle(true)
	case ActionStop:
		c.OnRecordingToggle(false)
	case ActionVolume:
		c.OnVolumeSample(ev.Volume)
	case ActionStyle:
		s, err := art.ParseStyle(ev.Style)
		if err != nil {
			return err
		}
		c.SetStyle(s)
	case ActionAnalysis:
		if ev.Analysis == nil {
			return fmt.Errorf("%w: analysis", ErrMissingField)
		}
		c.OnAnalysisUpdate(*ev.Analysis)
	case ActionEmotion:
		e, err := art.ParseEmotion(ev.Emotion)
		if err != nil {
			return err
		}
		a := cycle.Next()
		for a.Emotion != e {
			a = cycle.Next()
		}
		c.OnAnalysisUpdate(a)
	case ActionClear:
		c.RequestClear()
	case ActionUndo:
		c.RequestUndo()
	case ActionResize:
		c.Resize(ev.Width, ev.Height)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return nil
}

// SweepResult is one style's outcome of a style sweep.
type SweepResult struct {
	Style   art.Style
	Metrics map[string]float64
}

// RunStyleSweep replays sc once per style with the same seed.
func RunStyleSweep(ctx context.Context, sc *Scenario, styles []art.Style) ([]SweepResult, error) {
	if len(styles) == 0 {
		styles = art.Styles
	}
	results := make([]SweepResult, 0, len(styles))
	for _, s := range styles {
		run := *sc
		run.Style = string(s)
		if run.Seed == 0 {
			run.Seed = 1
		}
		res, err := RunScenario(ctx, &run)
		if err != nil {
			return results, fmt.Errorf("sweep %s: %w", s, err)
		}
		results = append(results, SweepResult{Style: s, Metrics: res.Metrics})
	}
	return results, nil
}
