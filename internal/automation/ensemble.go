package automation

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Ensemble replays one scenario under consecutive seeds in parallel.
type Ensemble struct {
	scenario  *Scenario
	numRuns   int
	seedStart int64
}

func NewEnsemble(sc *Scenario, numRuns int, seedStart int64) *Ensemble {
	if seedStart == 0 {
		seedStart = 1
	}
	return &Ensemble{scenario: sc, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sc := *e.scenario
			sc.Seed = e.seedStart + int64(idx)
			results[idx], errs[idx] = RunScenario(ctx, &sc)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Spread summarises one metric across ensemble runs.
type Spread struct {
	Name           string
	Mean, Min, Max float64
}

// Summarize returns one Spread per metric name, sorted by name.
func Summarize(results []*Result) []Spread {
	acc := make(map[string]*Spread)
	for _, r := range results {
		for name, v := range r.Metrics {
			s, ok := acc[name]
			if !ok {
				s = &Spread{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
				acc[name] = s
			}
			s.Mean += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
	}

	out := make([]Spread, 0, len(acc))
	for _, s := range acc {
		s.Mean /= float64(len(results))
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
