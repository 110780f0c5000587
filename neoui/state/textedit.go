package state

import (
	"unicode/utf8"

	"neo/neoui/msg"
)

// Control keys understood by TextEdit.
const (
	KeyBackspace = 0x08
	KeyDelete    = 0x7f
)

// TextEdit is the line being typed.
type TextEdit struct {
	buf [msg.MaxText]byte
	n   uint8

	// Pending is a completed line waiting to be sent. While it is set
	// another Enter keeps the buffer.
	Pending Line
	Ready   bool

	Overflow bool
}

// Apply edits the buffer with one key.
func (t *TextEdit) Apply(key rune) {
	switch {
	case key == '\r' || key == '\n':
		t.complete()
	case key == KeyBackspace || key == KeyDelete:
		t.backspace()
	case key < ' ' || !utf8.ValidRune(key):
	default:
		if int(t.n)+utf8.RuneLen(key) > len(t.buf) {
			t.Overflow = true
			return
		}
		t.n += uint8(utf8.EncodeRune(t.buf[t.n:], key))
	}
}

func (t *TextEdit) backspace() {
	if t.n == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(t.buf[:t.n])
	t.n -= uint8(size)
	t.Overflow = false
}

func (t *TextEdit) complete() {
	if t.n == 0 || t.Ready {
		return
	}
	t.Pending.Set(t.buf[:t.n])
	t.Ready = true
	t.n = 0
	t.Overflow = false
}

// Text returns the line being typed.
func (t *TextEdit) Text() []byte { return t.buf[:t.n] }

// Take returns the completed line and clears it.
func (t *TextEdit) Take() (Line, bool) {
	if !t.Ready {
		return Line{}, false
	}
	l := t.Pending
	t.Pending = Line{}
	t.Ready = false
	return l, true
}

// Len returns the length in bytes of the line being typed.
func (t *TextEdit) Len() int { return int(t.n) }
