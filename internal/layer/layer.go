// Package layer owns one running planets background: the bodies, the
// drawing surface, the pointer tracker and the frame chain that ties them
// to a host.
package layer

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/input"
	"github.com/san-kum/planetfield/internal/logging"
	"github.com/san-kum/planetfield/internal/metrics"
	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/render"
	"github.com/san-kum/planetfield/internal/surface"
)

// Layer is the lifecycle controller. All methods must be called from the
// host goroutine.
type Layer struct {
	host      host.Host
	cfg       config.Config
	rng       planets.Rand
	logger    *slog.Logger
	observers []metrics.Observer

	mounted bool
	inert   bool
	gen     uint64

	presenter host.Presenter
	surf      *surface.Manager
	canvas    *render.Raster
	rend      *render.Renderer
	tracker   *input.Tracker
	bodies    []planets.Body
	frame     host.FrameHandle
	frames    int
	release   []func()
}

type Option func(*Layer)

// WithRand fixes the random source used to populate bodies.
func WithRand(rng planets.Rand) Option {
	return func(l *Layer) { l.rng = rng }
}

// WithObserver receives a metrics.Frame after every presented frame.
func WithObserver(o metrics.Observer) Option {
	return func(l *Layer) { l.observers = append(l.observers, o) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Layer) { l.logger = logger }
}

func New(h host.Host, cfg *config.Config, opts ...Option) *Layer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	l := &Layer{host: h, cfg: *cfg, logger: logging.Logger()}
	for _, opt := range opts {
		opt(l)
	}
	l.rend = render.New(l.cfg.RenderOptions())
	return l
}

// Mount starts the layer. A host without a drawing surface leaves the
// layer inert and is not an error. Mounting a mounted layer does nothing.
func (l *Layer) Mount() (err error) {
	if l.mounted {
		return nil
	}
	if err := l.cfg.Validate(); err != nil {
		return fmt.Errorf("layer: %w", err)
	}

	defer func() {
		if err != nil {
			l.releaseAll()
		}
	}()

	presenter, err := l.host.AcquireSurface()
	if err != nil {
		l.logger.Warn("planets layer disabled", "err", err)
		l.mounted, l.inert = true, true
		return nil
	}
	l.presenter = presenter
	l.push(func() { l.presenter = nil })

	reduced := l.cfg.ResolveReducedMotion(l.host.PrefersReducedMotion())
	coarse := l.cfg.ResolveCoarsePointer(l.host.CoarsePointer())

	l.surf = surface.NewManager(l.host, l.cfg.MaxPixelRatio)
	state := l.surf.Resize()
	l.canvas = render.NewRaster(state.BufferWidth, state.BufferHeight)
	l.canvas.SetTransform(state.Transform())
	l.push(func() {
		l.canvas = nil
		l.rend.Reset()
	})

	l.tracker = input.NewTracker(state.Width, state.Height, coarse)

	gen := planets.NewGenerator(l.rng, l.cfg.PaletteSet())
	gen.SetRingProbability(l.cfg.RingProbability)
	n := planets.PopulationSize(l.cfg.Count, reduced)
	l.bodies = gen.Populate(n, l.cfg.MinSize, l.cfg.MaxSize, l.cfg.Speed, state.Width, state.Height)
	l.push(func() {
		l.bodies = nil
		l.tracker = nil
	})

	l.push(l.host.OnResize(l.onResize))
	l.push(l.host.OnPointerMove(l.onPointer))

	l.mounted = true
	l.schedule()
	l.push(func() {
		l.host.CancelFrame(l.frame)
		l.frame = 0
	})

	l.logger.Debug("planets layer mounted",
		"bodies", len(l.bodies),
		"reduced_motion", reduced,
		"coarse_pointer", coarse,
		"buffer", fmt.Sprintf("%dx%d", state.BufferWidth, state.BufferHeight))
	return nil
}

// Unmount stops the frame chain, removes the host listeners and discards
// bodies and canvas. It is safe to call more than once.
func (l *Layer) Unmount() {
	if !l.mounted {
		return
	}
	l.releaseAll()
	l.mounted, l.inert = false, false
	l.gen++
	l.logger.Debug("planets layer unmounted", "frames", l.frames)
}

// Reconfigure applies cfg. A change to count, size bounds or speed rebuilds
// the population; anything else takes effect on the next frame.
// Reduced-motion and pointer settings are read at mount only.
func (l *Layer) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("layer: %w", err)
	}
	structural := !l.cfg.SameShape(cfg)
	ratioChanged := l.cfg.MaxPixelRatio != cfg.MaxPixelRatio
	l.cfg = *cfg
	l.rend.SetOptions(l.cfg.RenderOptions())

	if !l.mounted {
		return nil
	}
	if structural {
		l.logger.Debug("planets layer remounting")
		l.Unmount()
		return l.Mount()
	}
	if ratioChanged && !l.inert {
		l.surf = surface.NewManager(l.host, l.cfg.MaxPixelRatio)
		l.onResize()
	}
	return nil
}

// Mounted reports whether Mount succeeded and Unmount has not run.
func (l *Layer) Mounted() bool { return l.mounted }

// Active reports whether the layer is mounted and animating.
func (l *Layer) Active() bool { return l.mounted && !l.inert }

// Bodies returns a copy of the current population.
func (l *Layer) Bodies() []planets.Body {
	if l.bodies == nil {
		return nil
	}
	out := make([]planets.Body, len(l.bodies))
	copy(out, l.bodies)
	return out
}

// Surface returns the current surface state.
func (l *Layer) Surface() surface.State {
	if l.surf == nil {
		return surface.State{}
	}
	return l.surf.State()
}

// Pointer returns the parallax sample.
func (l *Layer) Pointer() input.Sample {
	if l.tracker == nil {
		return input.Sample{}
	}
	return l.tracker.Sample()
}

// Frames reports how many frames have been presented since New.
func (l *Layer) Frames() int { return l.frames }

func (l *Layer) push(fn func()) {
	l.release = append(l.release, fn)
}

func (l *Layer) releaseAll() {
	for i := len(l.release) - 1; i >= 0; i-- {
		l.release[i]()
	}
	l.release = nil
}

func (l *Layer) schedule() {
	gen := l.gen
	l.frame = l.host.RequestFrame(func() { l.tick(gen) })
}

func (l *Layer) tick(gen uint64) {
	if !l.Active() || gen != l.gen {
		return
	}
	l.frame = 0

	state := l.surf.State()
	wraps := 0
	for i := range l.bodies {
		if planets.Advance(&l.bodies[i], state.Width, state.Height) {
			wraps++
		}
	}
	l.rend.Render(l.canvas, state, l.bodies, l.tracker.Sample())
	l.presenter.Present(l.canvas.Image())
	l.frames++

	if len(l.observers) > 0 {
		f := metrics.Frame{Index: l.frames, Bodies: l.bodies, Wraps: wraps, Surface: state}
		for _, o := range l.observers {
			o.Observe(f)
		}
	}

	// an observer may have unmounted the layer
	if l.Active() && gen == l.gen {
		l.schedule()
	}
}

func (l *Layer) onResize() {
	state := l.surf.Resize()
	l.canvas.Resize(state.BufferWidth, state.BufferHeight)
	l.canvas.SetTransform(state.Transform())
	l.tracker.Recenter(state.Width, state.Height)
}

func (l *Layer) onPointer(x, y float64) {
	l.tracker.Move(x, y)
}
