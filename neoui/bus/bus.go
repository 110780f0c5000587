// Package bus is the fixed set of lossy channels tasks use to talk.
//
// A Bus owns all queue storage. Channels are handed out once at startup;
// each one is a Ring plus a Sender/Receiver handle pair. Any number of
// Senders may share a channel, and exactly one Receiver drains it.
package bus

import (
	"errors"
	"sync/atomic"

	"neo/neoui/critical"
	"neo/neoui/queue"
)

const (
	// NumChannels is the number of channels a Bus can hand out.
	NumChannels = 2
	// QueueSlots is the capacity of every channel.
	QueueSlots = 10
)

// ErrTooManyChannels is returned when more than NumChannels channels are requested.
var ErrTooManyChannels = errors.New("bus: too many channels")

// Bus is an arena of fixed-capacity rings.
type Bus[T any] struct {
	storage [NumChannels][QueueSlots]T
	queues  [NumChannels]queue.Ring[T]
	dropped [NumChannels]atomic.Uint32
	used    uint8
}

// New returns a Bus with every channel unallocated.
func New[T any]() *Bus[T] {
	b := &Bus[T]{}
	for i := range b.queues {
		b.queues[i].Init(b.storage[i][:])
	}
	return b
}

// Channel allocates the next unused channel.
//
// It fails on exactly the (NumChannels+1)th call. Running out of channels
// is a wiring mistake; callers abort startup on the error.
func (b *Bus[T]) Channel() (Sender[T], Receiver[T], error) {
	if int(b.used) >= NumChannels {
		return Sender[T]{}, Receiver[T]{}, ErrTooManyChannels
	}
	ch := b.used
	b.used++
	return Sender[T]{bus: b, ch: ch}, Receiver[T]{bus: b, ch: ch}, nil
}

// MustChannel is like Channel but panics on error.
func (b *Bus[T]) MustChannel() (Sender[T], Receiver[T]) {
	tx, rx, err := b.Channel()
	if err != nil {
		panic(err)
	}
	return tx, rx
}

// Allocated returns how many channels have been handed out.
func (b *Bus[T]) Allocated() int { return int(b.used) }

// Pending returns the number of queued entries on channel ch.
func (b *Bus[T]) Pending(ch int) int {
	if ch < 0 || ch >= int(b.used) {
		return 0
	}
	return b.queues[ch].Len()
}

// Dropped returns how many sends channel ch has rejected.
func (b *Bus[T]) Dropped(ch int) uint32 {
	if ch < 0 || ch >= NumChannels {
		return 0
	}
	return b.dropped[ch].Load()
}

func (b *Bus[T]) push(ch uint8, v T) bool {
	s := critical.Enter()
	ok := b.queues[ch].Push(v)
	critical.Exit(s)
	if !ok {
		b.dropped[ch].Add(1)
	}
	return ok
}

func (b *Bus[T]) pop(ch uint8) (T, bool) {
	return b.queues[ch].Pop()
}
