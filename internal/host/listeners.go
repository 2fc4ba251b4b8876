package host

// Listeners is an ordered set of callbacks with idempotent removal.
type Listeners[F any] struct {
	next  int
	items []listener[F]
}

type listener[F any] struct {
	id int
	fn F
}

// Add registers fn and returns a func that removes it. Calling the remover
// more than once is harmless.
func (l *Listeners[F]) Add(fn F) func() {
	l.next++
	id := l.next
	l.items = append(l.items, listener[F]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Listeners[F]) remove(id int) {
	for i, it := range l.items {
		if it.id == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return
		}
	}
}

// Each calls visit for every listener registered at the time of the call.
func (l *Listeners[F]) Each(visit func(F)) {
	snapshot := l.items
	for _, it := range snapshot {
		visit(it.fn)
	}
}

// Len reports registered listeners.
func (l *Listeners[F]) Len() int {
	return len(l.items)
}
