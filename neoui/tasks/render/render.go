// Package render draws the chat UI.
package render

import (
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Render"),
	RunEveryUS:     100_000,
	TimeBudgetUS:   20_000,
	MemBudgetBytes: 1_000,
}

// Task redraws the screen when the render state is dirty. Without a
// screen it still drains the transcript queue.
type Task struct {
	screen *Screen
}

// New returns a render task drawing on s, which may be nil.
func New(s *Screen) Task { return Task{screen: s} }

func (Task) Info() *kernel.Info { return &Info }

func (t Task) Run(ctx *kernel.Context) {
	r := &ctx.Data.Render
	if r.Overflowed {
		r.Overflowed = false
		ctx.Fail(msg.ErrOverflow, msg.KindChatRecv)
	}
	if !r.Dirty {
		return
	}
	for {
		line, ok := r.Pending.Pop()
		if !ok {
			break
		}
		if t.screen != nil {
			t.screen.AppendLine(line.Bytes())
		}
	}
	r.Dirty = false
	if t.screen == nil {
		return
	}
	if err := t.screen.Draw(r); err != nil {
		ctx.Fail(msg.ErrUnknown, msg.KindNone)
	}
}
