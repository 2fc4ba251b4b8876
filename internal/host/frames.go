package host

// FrameQueue holds one-shot frame callbacks.
type FrameQueue struct {
	next    FrameHandle
	pending []queued
	running []queued
}

type queued struct {
	h  FrameHandle
	fn func()
}

// Request queues fn for the next Flush.
func (q *FrameQueue) Request(fn func()) FrameHandle {
	q.next++
	q.pending = append(q.pending, queued{h: q.next, fn: fn})
	return q.next
}

// Cancel drops a callback that has not run yet. Unknown or already-run
// handles are ignored.
func (q *FrameQueue) Cancel(h FrameHandle) {
	for i := range q.running {
		if q.running[i].h == h {
			q.running[i].fn = nil
			return
		}
	}
	for i, p := range q.pending {
		if p.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Flush runs the callbacks queued before the call, in request order, and
// returns how many ran. Callbacks requested during Flush wait for the next one.
func (q *FrameQueue) Flush() int {
	q.running, q.pending = q.pending, nil
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn()
		ran++
	}
	q.running = nil
	return ran
}

// Len reports pending callbacks.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}
