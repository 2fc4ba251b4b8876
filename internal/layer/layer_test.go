package layer_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/layer"
	"github.com/san-kum/planetfield/internal/metrics"
	"github.com/san-kum/planetfield/internal/planets"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.MinSize, cfg.MaxSize = 4, 10
	return cfg
}

type recorder struct{ frames []metrics.Frame }

func (r *recorder) Observe(f metrics.Frame) { r.frames = append(r.frames, f) }

var _ = Describe("Layer", func() {
	var (
		h   *host.Headless
		cfg *config.Config
		l   *layer.Layer
	)

	newLayer := func(opts ...layer.Option) *layer.Layer {
		opts = append([]layer.Option{layer.WithRand(rand.New(rand.NewSource(7)))}, opts...)
		return layer.New(h, cfg, opts...)
	}

	BeforeEach(func() {
		h = host.NewHeadless(64, 48, 1)
		cfg = smallConfig()
	})

	AfterEach(func() {
		if l != nil {
			l.Unmount()
		}
	})

	Describe("Mount", func() {
		It("populates the configured number of bodies", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			Expect(l.Active()).To(BeTrue())
			Expect(l.Bodies()).To(HaveLen(6))
			Expect(h.ActiveListeners()).To(Equal(2))
			Expect(h.PendingFrames()).To(Equal(1))
		})

		It("shrinks the population under reduced motion", func() {
			h = host.NewHeadless(64, 48, 1, host.WithPreferences(host.Preferences{ReducedMotion: true}))
			cfg.Count = 10
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			Expect(l.Bodies()).To(HaveLen(4))
		})

		It("keeps at least two bodies under reduced motion", func() {
			cfg.Count = 1
			cfg.ReducedMotion = config.On
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			Expect(l.Bodies()).To(HaveLen(2))
		})

		It("sizes the buffer from the clamped device pixel ratio", func() {
			h = host.NewHeadless(64, 48, 3)
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			s := l.Surface()
			Expect(s.Ratio).To(Equal(2.0))
			Expect(s.BufferWidth).To(Equal(128))
			Expect(s.BufferHeight).To(Equal(96))
		})

		It("is a no-op when already mounted", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			Expect(l.Mount()).To(Succeed())
			Expect(h.ActiveListeners()).To(Equal(2))
			Expect(h.PendingFrames()).To(Equal(1))
		})

		It("rejects an invalid config without touching the host", func() {
			cfg.MinSize, cfg.MaxSize = 20, 10
			l = newLayer()
			Expect(l.Mount()).To(MatchError(planets.ErrInvalidBounds))
			Expect(l.Mounted()).To(BeFalse())
			Expect(h.ActiveListeners()).To(BeZero())
			Expect(h.PendingFrames()).To(BeZero())
		})

		It("degrades silently without a surface", func() {
			h = host.NewHeadless(64, 48, 1, host.WithoutSurface())
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			Expect(l.Mounted()).To(BeTrue())
			Expect(l.Active()).To(BeFalse())
			Expect(l.Bodies()).To(BeEmpty())
			Expect(h.ActiveListeners()).To(BeZero())
			Expect(h.PendingFrames()).To(BeZero())

			Expect(h.Step()).To(BeZero())
			n, _ := h.Presented()
			Expect(n).To(BeZero())
		})
	})

	Describe("frames", func() {
		It("advances every body and presents one frame per refresh", func() {
			rec := &recorder{}
			l = newLayer(layer.WithObserver(rec))
			Expect(l.Mount()).To(Succeed())
			before := l.Bodies()

			Expect(h.Step()).To(Equal(1))
			after := l.Bodies()
			for i := range before {
				Expect(after[i].X).To(BeNumerically("~", before[i].X+before[i].VX, 1e-9), "body %d", i)
			}

			n, size := h.Presented()
			Expect(n).To(Equal(1))
			Expect(size.X).To(Equal(64))
			Expect(size.Y).To(Equal(48))
			Expect(l.Frames()).To(Equal(1))
			Expect(h.PendingFrames()).To(Equal(1))

			h.Step()
			h.Step()
			Expect(rec.frames).To(HaveLen(3))
			Expect(rec.frames[2].Index).To(Equal(3))
		})

		It("stops when an observer unmounts mid-frame", func() {
			var lay *layer.Layer
			stop := observerFunc(func(metrics.Frame) { lay.Unmount() })
			lay = newLayer(layer.WithObserver(stop))
			l = lay
			Expect(l.Mount()).To(Succeed())

			h.Step()
			Expect(l.Mounted()).To(BeFalse())
			Expect(h.PendingFrames()).To(BeZero())
			Expect(h.ActiveListeners()).To(BeZero())
		})
	})

	Describe("input", func() {
		It("starts the pointer at the viewport centre and follows moves", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			Expect(l.Pointer().X).To(Equal(32.0))
			Expect(l.Pointer().Y).To(Equal(24.0))

			h.MovePointer(5, 6)
			Expect(l.Pointer().X).To(Equal(5.0))
			Expect(l.Pointer().Y).To(Equal(6.0))
		})

		It("ignores moves on a coarse pointer", func() {
			h = host.NewHeadless(64, 48, 1, host.WithPreferences(host.Preferences{CoarsePointer: true}))
			l = newLayer()
			Expect(l.Mount()).To(Succeed())

			h.MovePointer(5, 6)
			Expect(l.Pointer().X).To(Equal(32.0))
		})

		It("recomputes the surface on resize", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())

			h.Resize(100, 80, 1.5)
			s := l.Surface()
			Expect(s.BufferWidth).To(Equal(150))
			Expect(s.BufferHeight).To(Equal(120))
			Expect(s.Transform().A).To(Equal(1.5))
			Expect(l.Pointer().X).To(Equal(50.0))

			h.Step()
			_, size := h.Presented()
			Expect(size.X).To(Equal(150))
		})
	})

	Describe("Unmount", func() {
		It("releases everything and is idempotent", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			h.Step()

			l.Unmount()
			l.Unmount()
			Expect(l.Mounted()).To(BeFalse())
			Expect(l.Bodies()).To(BeNil())
			Expect(h.ActiveListeners()).To(BeZero())
			Expect(h.PendingFrames()).To(BeZero())

			Expect(h.Step()).To(BeZero())
			n, _ := h.Presented()
			Expect(n).To(Equal(1))
		})

		It("can mount again afterwards", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			l.Unmount()
			Expect(l.Mount()).To(Succeed())
			Expect(h.ActiveListeners()).To(Equal(2))
			Expect(h.PendingFrames()).To(Equal(1))
		})
	})

	Describe("Reconfigure", func() {
		It("rebuilds the population when the count changes", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())

			next := smallConfig()
			next.Count = 3
			Expect(l.Reconfigure(next)).To(Succeed())
			Expect(l.Bodies()).To(HaveLen(3))
			Expect(h.ActiveListeners()).To(Equal(2))
			Expect(h.PendingFrames()).To(Equal(1))
		})

		It("keeps the bodies for cosmetic changes", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())
			before := l.Bodies()

			next := smallConfig()
			next.Parallax = 40
			next.Background = [2]string{"#102030", "#000000"}
			Expect(l.Reconfigure(next)).To(Succeed())
			Expect(l.Bodies()).To(Equal(before))

			h.Step()
			n, _ := h.Presented()
			Expect(n).To(Equal(1))
		})

		It("applies a new pixel ratio cap", func() {
			h = host.NewHeadless(64, 48, 3)
			l = newLayer()
			Expect(l.Mount()).To(Succeed())

			next := smallConfig()
			next.MaxPixelRatio = 1
			Expect(l.Reconfigure(next)).To(Succeed())
			Expect(l.Surface().BufferWidth).To(Equal(64))
		})

		It("rejects an invalid config and keeps running", func() {
			l = newLayer()
			Expect(l.Mount()).To(Succeed())

			next := smallConfig()
			next.Speed = -1
			Expect(l.Reconfigure(next)).To(MatchError(planets.ErrInvalidSpeed))
			Expect(l.Active()).To(BeTrue())
		})
	})
})

type observerFunc func(metrics.Frame)

func (f observerFunc) Observe(fr metrics.Frame) { f(fr) }
