// Package link moves sealed frames between the bus and the radio.
package link

import (
	"neo/hal"
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("NetLink"),
	RunEveryUS:     20_000,
	TimeBudgetUS:   2_000,
	MemBudgetBytes: 500,
}

// Task sends at most one queued frame and receives at most one frame per run.
type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	l := &ctx.Data.Link
	if l.Overflowed {
		l.Overflowed = false
		ctx.Fail(msg.ErrOverflow, msg.KindLinkTx)
	}
	net := ctx.BSP.Network()
	if net == nil {
		return
	}

	if frame, ok := l.Tx.Pop(); ok {
		if err := net.Send(frame.Bytes()); err != nil {
			l.Errors++
			ctx.Fail(msg.ErrLink, msg.KindLinkTx)
		} else {
			l.Sent++
		}
	}

	var pkt [hal.MaxPacket]byte
	n, err := net.Recv(pkt[:])
	switch {
	case err != nil:
		l.Errors++
		ctx.Fail(msg.ErrLink, msg.KindLinkRx)
	case n == 0:
	default:
		m, ok := msg.WithPayload(msg.KindLinkRx, pkt[:n])
		if !ok {
			ctx.Fail(msg.ErrTooLarge, msg.KindLinkRx)
			return
		}
		l.Received++
		ctx.Send(m)
	}
}
