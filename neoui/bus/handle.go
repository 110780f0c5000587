package bus

// Sender is the producing side of a channel. The zero value drops everything.
type Sender[T any] struct {
	bus *Bus[T]
	ch  uint8
}

// Send queues v. A full channel drops v and returns false; delivery is
// best effort and callers must not depend on it.
func (s Sender[T]) Send(v T) bool {
	if s.bus == nil {
		return false
	}
	return s.bus.push(s.ch, v)
}

// Channel returns the channel index.
func (s Sender[T]) Channel() int { return int(s.ch) }

// Valid reports whether the handle came from Bus.Channel.
func (s Sender[T]) Valid() bool { return s.bus != nil }

// Receiver is the consuming side of a channel.
type Receiver[T any] struct {
	bus *Bus[T]
	ch  uint8
}

// Recv pops the oldest entry without blocking. An empty channel returns
// the zero value and false.
func (r Receiver[T]) Recv() (T, bool) {
	if r.bus == nil {
		var zero T
		return zero, false
	}
	return r.bus.pop(r.ch)
}

// Len returns the number of queued entries.
func (r Receiver[T]) Len() int {
	if r.bus == nil {
		return 0
	}
	return r.bus.queues[r.ch].Len()
}

// Channel returns the channel index.
func (r Receiver[T]) Channel() int { return int(r.ch) }

// Valid reports whether the handle came from Bus.Channel.
func (r Receiver[T]) Valid() bool { return r.bus != nil }
