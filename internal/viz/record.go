package viz

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

// ErrNoFrames is returned when encoding an empty recording.
var ErrNoFrames = errors.New("viz: no frames recorded")

// Recorder collects frames for a GIF. Frames are quantized to the Plan 9
// palette as they arrive, so the caller may reuse its buffer.
type Recorder struct {
	frames []*image.Paletted
	delay  int
	limit  int
}

// NewRecorder keeps at most limit frames (0 for no limit), each shown for
// delay hundredths of a second.
func NewRecorder(delay, limit int) *Recorder {
	if delay <= 0 {
		delay = 2
	}
	return &Recorder{delay: delay, limit: limit}
}

// Add quantizes frame and appends it. It reports false once the limit is reached.
func (r *Recorder) Add(frame *image.RGBA) bool {
	if r.limit > 0 && len(r.frames) >= r.limit {
		return false
	}
	b := frame.Bounds()
	img := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(img, img.Rect, frame, b.Min)
	r.frames = append(r.frames, img)
	return true
}

func (r *Recorder) Len() int { return len(r.frames) }

// WriteGIF encodes the recording as a looping animation.
func (r *Recorder) WriteGIF(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) SaveGIF(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteGIF(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SavePNG writes a single frame.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
