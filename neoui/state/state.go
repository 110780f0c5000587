// Package state holds the per-task data owned by the scheduler.
//
// Every stateful task owns one field of TaskData. The dispatch loop writes
// into those fields between ticks; the task reads and drains them when it
// runs. Nothing here locks: the single cooperative loop serialises access.
//
// Queues inside TaskData bind to storage embedded in the same struct on
// first use, so a TaskData must not be copied once in use.
package state

import (
	"unicode/utf8"

	"neo/neoui/msg"
)

// TaskData is the shared data store handed to every task.
type TaskData struct {
	Button   Button
	Chat     Chat
	Crypto   Crypto
	Keyboard Keyboard
	Link     Link
	Render   Render
	TextEdit TextEdit
	Fib      Fib
}

// Line is a fixed-capacity byte string.
type Line struct {
	Len  uint8
	Data [msg.MaxPayload]byte
}

// MakeLine copies b, truncated to the line capacity.
func MakeLine(b []byte) Line {
	var l Line
	l.Set(b)
	return l
}

// Set replaces the content with b, truncated to the line capacity.
func (l *Line) Set(b []byte) {
	l.Len = uint8(copy(l.Data[:], b))
}

// Append adds b up to the capacity and reports whether all of it fit.
func (l *Line) Append(b []byte) bool {
	n := copy(l.Data[l.Len:], b)
	l.Len += uint8(n)
	return n == len(b)
}

// AppendString is Append for a string.
func (l *Line) AppendString(s string) bool {
	n := copy(l.Data[l.Len:], s)
	l.Len += uint8(n)
	return n == len(s)
}

// Bytes returns the content.
func (l *Line) Bytes() []byte { return l.Data[:l.Len] }

func (l *Line) String() string { return string(l.Bytes()) }

// Keyboard counts keys read from the input devices.
type Keyboard struct {
	Keys    uint32
	Dropped uint32

	// Pending holds the head of a UTF-8 sequence split across UART reads.
	Pending    [utf8.UTFMax]byte
	PendingLen uint8
}

// Fib is the load generator's output.
type Fib struct {
	N      uint32
	Result uint64
}
