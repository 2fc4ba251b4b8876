// Package sim drives planets layers on headless hosts, one or many at a
// time, for the offline commands.
package sim

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/layer"
	"github.com/san-kum/planetfield/internal/metrics"
	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/surface"
)

type Options struct {
	Width, Height float64
	DPR           float64
	Frames        int
	Prefs         host.Preferences

	// Sink receives every presented frame. The image is reused between
	// frames.
	Sink      func(*image.RGBA)
	Observers []metrics.Observer
}

type Result struct {
	Seed    int64
	Initial []planets.Body
	Final   []planets.Body
	Surface surface.State
	Frames  int
	Metrics map[string]float64
	// Last is the final presented frame, nil if none was.
	Last *image.RGBA
}

// Run mounts a layer for cfg on a headless host, steps it opts.Frames
// times and unmounts it. The standard metrics are always recorded.
func Run(ctx context.Context, cfg *config.Config, opts Options, layerOpts ...layer.Option) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	res := &Result{Seed: cfg.Seed}
	stats := metrics.Standard()

	h := host.NewHeadless(opts.Width, opts.Height, opts.DPR,
		host.WithPreferences(opts.Prefs),
		host.WithFrameSink(func(f *image.RGBA) {
			res.Last = f
			if opts.Sink != nil {
				opts.Sink(f)
			}
		}))

	all := []layer.Option{layer.WithObserver(stats)}
	if cfg.Seed != 0 {
		all = append(all, layer.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	}
	for _, o := range opts.Observers {
		all = append(all, layer.WithObserver(o))
	}
	l := layer.New(h, cfg, append(all, layerOpts...)...)

	if err := l.Mount(); err != nil {
		return nil, err
	}
	defer l.Unmount()

	res.Initial = l.Bodies()
	for i := 0; i < opts.Frames; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}
		h.Step()
	}

	res.Final = l.Bodies()
	res.Surface = l.Surface()
	res.Frames = l.Frames()
	res.Metrics = stats.Values()
	return res, nil
}

func validate(opts Options) error {
	if !(opts.Width > 0) || !(opts.Height > 0) {
		return fmt.Errorf("viewport must be positive, got %vx%v", opts.Width, opts.Height)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", opts.Frames)
	}
	return nil
}
