package host

import (
	"image"
	"testing"
)

func TestFrameQueueOneShot(t *testing.T) {
	var q FrameQueue
	runs := 0
	q.Request(func() { runs++ })

	if n := q.Flush(); n != 1 {
		t.Fatalf("expected 1 callback, ran %d", n)
	}
	if n := q.Flush(); n != 0 {
		t.Errorf("callbacks must be one-shot, ran %d on second flush", n)
	}
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}
}

func TestFrameQueueRequestDuringFlush(t *testing.T) {
	var q FrameQueue
	var chain func()
	runs := 0
	chain = func() {
		runs++
		q.Request(chain)
	}
	q.Request(chain)

	for i := 0; i < 3; i++ {
		if n := q.Flush(); n != 1 {
			t.Fatalf("flush %d ran %d callbacks, want 1", i, n)
		}
	}
	if runs != 3 || q.Len() != 1 {
		t.Errorf("expected 3 runs and 1 pending, got %d runs, %d pending", runs, q.Len())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := false
	h := q.Request(func() { ran = true })
	q.Cancel(h)
	q.Cancel(h)
	q.Cancel(12345)

	if q.Flush() != 0 || ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameQueueCancelWithinBatch(t *testing.T) {
	var q FrameQueue
	var second FrameHandle
	ran := false
	q.Request(func() { q.Cancel(second) })
	second = q.Request(func() { ran = true })

	if n := q.Flush(); n != 1 || ran {
		t.Errorf("callback cancelled mid-flush still ran (n=%d)", n)
	}
}

func TestListenersRemoveIdempotent(t *testing.T) {
	var l Listeners[func()]
	calls := 0
	remove := l.Add(func() { calls++ })
	l.Add(func() { calls += 10 })

	l.Each(func(fn func()) { fn() })
	remove()
	remove()
	l.Each(func(fn func()) { fn() })

	if calls != 21 {
		t.Errorf("expected 21, got %d", calls)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 listener left, got %d", l.Len())
	}
}

func TestListenersRemoveDuringEach(t *testing.T) {
	var l Listeners[func()]
	calls := 0
	var removeSecond func()
	l.Add(func() { calls++; removeSecond() })
	removeSecond = l.Add(func() { calls++ })

	l.Each(func(fn func()) { fn() })
	if calls != 2 {
		t.Errorf("Each should visit its snapshot, got %d calls", calls)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 listener, got %d", l.Len())
	}
}

func TestHeadless(t *testing.T) {
	var seen image.Point
	h := NewHeadless(100, 50, 2, WithFrameSink(func(img *image.RGBA) { seen = img.Rect.Size() }))

	resized := 0
	h.OnResize(func() { resized++ })
	var px, py float64
	h.OnPointerMove(func(x, y float64) { px, py = x, y })

	h.Resize(200, 100, 1)
	h.MovePointer(3, 4)
	if resized != 1 || px != 3 || py != 4 {
		t.Errorf("events not delivered: resized=%d pointer=(%f, %f)", resized, px, py)
	}
	if w, hh := h.Viewport(); w != 200 || hh != 100 || h.DevicePixelRatio() != 1 {
		t.Errorf("unexpected viewport %fx%f @%f", w, hh, h.DevicePixelRatio())
	}

	p, err := h.AcquireSurface()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Present(image.NewRGBA(image.Rect(0, 0, 8, 4)))
	if n, size := h.Presented(); n != 1 || size != image.Pt(8, 4) || seen != size {
		t.Errorf("unexpected presentation: n=%d size=%v seen=%v", n, size, seen)
	}

	if _, err := NewHeadless(1, 1, 1, WithoutSurface()).AcquireSurface(); err != ErrNoSurface {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}
