package sim

import (
	"context"
	"sync"

	"github.com/san-kum/planetfield/internal/config"
)

// Ensemble runs numRuns independent layers concurrently, seeded
// seedStart, seedStart+1 and so on. A seed of 0 means unseeded, so a
// seedStart below 1 is raised to 1. Each layer stays on its own goroutine.
// Frame sinks and observers in opts are shared by every run, so they are
// dropped.
type Ensemble struct {
	cfg       config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: *cfg, numRuns: numRuns, seedStart: max(seedStart, 1)}
}

func (e *Ensemble) Run(ctx context.Context, opts Options) ([]*Result, error) {
	opts.Sink, opts.Observers = nil, nil
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = Run(ctx, &cfgCopy, opts)
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

// Mean averages one metric over a set of results.
func Mean(results []*Result, metric string) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Metrics[metric]
	}
	return sum / float64(len(results))
}
