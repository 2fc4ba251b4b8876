package planets

// Advance moves b by one frame of drift and spin, then wraps it around the
// w×h viewport. Deltas are per frame, not scaled by wall-clock time.
// It reports whether the body wrapped.
func Advance(b *Body, w, h float64) bool {
	b.X += b.VX
	b.Y += b.VY
	b.Rotation += b.Spin
	return Wrap(b, w, h)
}

// Wrap teleports a body whose centre passed an edge by more than its margin
// to the opposite edge at the same margin. Each axis and direction is
// checked on its own.
func Wrap(b *Body, w, h float64) bool {
	m := b.Margin()
	wrapped := false
	if b.X < -m {
		b.X = w + m
		wrapped = true
	}
	if b.X > w+m {
		b.X = -m
		wrapped = true
	}
	if b.Y < -m {
		b.Y = h + m
		wrapped = true
	}
	if b.Y > h+m {
		b.Y = -m
		wrapped = true
	}
	return wrapped
}
