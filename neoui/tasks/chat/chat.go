// Package chat turns typed lines into sealing requests.
package chat

import (
	"neo/hal"
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Chat"),
	RunEveryUS:     50_000,
	TimeBudgetUS:   1_000,
	MemBudgetBytes: 500,
}

// Task hands one outgoing line per run to the crypto task and keeps the
// status LED in step with the buttons.
type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	c := &ctx.Data.Chat
	if c.Overflowed {
		c.Overflowed = false
		ctx.Fail(msg.ErrOverflow, msg.KindChatSend)
	}

	if led := ctx.BSP.LED(); led != nil {
		want := hal.Green
		switch {
		case c.PTT:
			want = hal.Blue
		case c.AI:
			want = hal.Purple
		}
		if led.Color() != want {
			led.Set(want)
		}
	}

	line, ok := c.Outgoing.Pop()
	if !ok {
		return
	}
	m, ok := msg.WithPayload(msg.KindSeal, line.Bytes())
	if !ok {
		ctx.Fail(msg.ErrTooLarge, msg.KindChatSend)
		return
	}
	ctx.Send(m)
}
