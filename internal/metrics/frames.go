package metrics

type FrameCount struct {
	name   string
	frames int
}

func NewFrameCount() *FrameCount {
	return &FrameCount{name: "frames"}
}

func (c *FrameCount) Name() string { return c.name }

func (c *FrameCount) Observe(f Frame) { c.frames++ }

func (c *FrameCount) Value() float64 { return float64(c.frames) }

func (c *FrameCount) Reset() { c.frames = 0 }

// WrapRate is the mean number of edge wraps per frame.
type WrapRate struct {
	name    string
	wraps   int
	samples int
}

func NewWrapRate() *WrapRate {
	return &WrapRate{name: "wrap_rate"}
}

func (w *WrapRate) Name() string {
	return w.name
}

func (w *WrapRate) Observe(f Frame) {
	w.wraps += f.Wraps
	w.samples++
}

func (w *WrapRate) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return float64(w.wraps) / float64(w.samples)
}

func (w *WrapRate) Reset() {
	w.wraps = 0
	w.samples = 0
}
