package state

import (
	"bytes"

	"neo/neoui/msg"
)

// Render is what the screen should show.
type Render struct {
	PTT bool

	// New transcript lines not yet drawn.
	Pending    LineQueue
	Overflowed bool

	Edit Line

	LastError    msg.ErrCode
	LastErrorRef msg.Kind
	Errors       uint32

	Dirty bool
}

// AddLine queues prefix followed by text for the transcript.
func (r *Render) AddLine(prefix string, text []byte) {
	var l Line
	l.AppendString(prefix)
	l.Append(text)
	if !r.Pending.Push(l.Bytes()) {
		r.Overflowed = true
	}
	r.Dirty = true
}

// SetEdit mirrors the text edit buffer.
func (r *Render) SetEdit(b []byte) {
	if bytes.Equal(r.Edit.Bytes(), b) {
		return
	}
	r.Edit.Set(b)
	r.Dirty = true
}

// SetPTT mirrors the push-to-talk state.
func (r *Render) SetPTT(on bool) {
	if r.PTT != on {
		r.PTT = on
		r.Dirty = true
	}
}

// RecordError remembers the last reported failure.
func (r *Render) RecordError(code msg.ErrCode, ref msg.Kind) {
	r.LastError = code
	r.LastErrorRef = ref
	r.Errors++
	r.Dirty = true
}
