package automation

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/engine"
)

var (
	ErrUnknownAction = errors.New("automation: unknown action")
	ErrFrameRange    = errors.New("automation: event frame outside scenario")
	ErrMissingField  = errors.New("automation: event is missing a required field")
)

const (
	ActionRecord   = "record"
	ActionStop     = "stop"
	ActionVolume   = "volume"
	ActionStyle    = "style"
	ActionAnalysis = "analysis"
	ActionEmotion  = "emotion"
	ActionClear    = "clear"
	ActionUndo     = "undo"
	ActionResize   = "resize"
)

// Scenario is a scripted canvas session replayed frame by frame.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Style       string  `yaml:"style"`
	Seed        int64   `yaml:"seed"`
	FPS         int     `yaml:"fps"`
	Frames      int     `yaml:"frames"`
	Events      []Event `yaml:"events"`
}

// Event is applied through the control surface just before its frame is drawn.
type Event struct {
	Frame    int           `yaml:"frame"`
	Action   string        `yaml:"action"`
	Volume   float64       `yaml:"volume,omitempty"`
	Style    string        `yaml:"style,omitempty"`
	Emotion  string        `yaml:"emotion,omitempty"`
	Width    int           `yaml:"width,omitempty"`
	Height   int           `yaml:"height,omitempty"`
	Analysis *art.Analysis `yaml:"analysis,omitempty"`
}

// StepError reports the event that failed, by its index in the scenario.
type StepError struct {
	Step   int
	Frame  int
	Action string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (frame %d, %s): %v", e.Step+1, e.Frame, e.Action, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Width == 0 && sc.Height == 0 {
		sc.Width, sc.Height = 640, 360
	}
	if sc.Style == "" {
		sc.Style = string(art.DefaultStyle)
	}
	if sc.FPS <= 0 {
		sc.FPS = engine.DefaultFPS
	}
	if sc.Frames <= 0 {
		last := 0
		for _, ev := range sc.Events {
			last = max(last, ev.Frame)
		}
		sc.Frames = last + 1
	}
}

// Validate checks every event, returning the first failure as a *StepError.
func (sc *Scenario) Validate() error {
	if _, err := art.ParseStyle(sc.Style); err != nil {
		return fmt.Errorf("scenario style: %w", err)
	}
	for i, ev := range sc.Events {
		if err := ev.validate(sc.Frames); err != nil {
			return &StepError{Step: i, Frame: ev.Frame, Action: ev.Action, Err: err}
		}
	}
	return nil
}

func (ev Event) validate(frames int) error {
	if ev.Frame < 0 || ev.Frame >= frames {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrFrameRange, ev.Frame, frames)
	}
	switch ev.Action {
	case ActionRecord, ActionStop, ActionVolume, ActionClear, ActionUndo, ActionResize:
	case ActionStyle:
		if _, err := art.ParseStyle(ev.Style); err != nil {
			return err
		}
	case ActionEmotion:
		if _, err := art.ParseEmotion(ev.Emotion); err != nil {
			return err
		}
	case ActionAnalysis:
		if ev.Analysis == nil {
			return fmt.Errorf("%w: analysis", ErrMissingField)
		}
		if ev.Analysis.Tempo != "" {
			tp, err := art.ParseTempo(string(ev.Analysis.Tempo))
			if err != nil {
				return err
			}
			ev.Analysis.Tempo = tp
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return nil
}

// timeline returns event indices grouped by frame, in scenario order within a frame.
func (sc *Scenario) timeline() [][]int {
	order := make([]int, len(sc.Events))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sc.Events[order[a]].Frame < sc.Events[order[b]].Frame
	})
	byFrame := make([][]int, sc.Frames)
	for _, i := range order {
		f := sc.Events[i].Frame
		byFrame[f] = append(byFrame[f], i)
	}
	return byFrame
}
