// Package textedit publishes lines completed in the edit buffer.
package textedit

import (
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("TextEdit"),
	RunEveryUS:     50_000,
	TimeBudgetUS:   500,
	MemBudgetBytes: 300,
}

type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	te := &ctx.Data.TextEdit
	if te.Overflow {
		te.Overflow = false
		ctx.Fail(msg.ErrOverflow, msg.KindKeyboard)
	}
	line, ok := te.Take()
	if !ok {
		return
	}
	m, _ := msg.WithPayload(msg.KindChatSend, line.Bytes())
	ctx.Send(m)
	ctx.Data.Render.SetEdit(te.Text())
}
