// Package keyboard reads key presses from the keyboard and the UART.
package keyboard

import (
	"unicode/utf8"

	"neo/hal"
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
	"neo/neoui/state"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Keyboard"),
	RunEveryUS:     10_000,
	TimeBudgetUS:   500,
	MemBudgetBytes: 200,
}

// MaxKeysPerRun bounds the work of one run. It is below the bus depth so
// one burst of typing cannot starve the other producers.
const MaxKeysPerRun = 8

type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	k := &ctx.Data.Keyboard
	budget := MaxKeysPerRun
	budget -= drainEvents(ctx, k, budget)
	if budget > 0 {
		drainSerial(ctx, k, budget)
	}
}

func drainEvents(ctx *kernel.Context, k *state.Keyboard, budget int) int {
	in := ctx.BSP.Input()
	if in == nil {
		return 0
	}
	kb := in.Keyboard()
	if kb == nil {
		return 0
	}
	events := kb.Events()
	n := 0
	for n < budget {
		select {
		case ev := <-events:
			if r, ok := Rune(ev); ok {
				emit(ctx, k, r)
				n++
			}
		default:
			return n
		}
	}
	return n
}

func drainSerial(ctx *kernel.Context, k *state.Keyboard, budget int) {
	ser := ctx.BSP.Serial()
	if ser == nil {
		return
	}
	n := decodePending(ctx, k, budget)
	var b [1]byte
	for n < budget && ser.Buffered() > 0 {
		if c, err := ser.Read(b[:]); err != nil || c == 0 {
			return
		}
		k.Pending[k.PendingLen] = b[0]
		k.PendingLen++
		n += decodePending(ctx, k, budget-n)
	}
}

// decodePending emits the complete runes at the front of the pending
// bytes, up to limit. An invalid lead byte is dropped alone so the bytes
// behind it are decoded on their own.
func decodePending(ctx *kernel.Context, k *state.Keyboard, limit int) int {
	n := 0
	for n < limit && k.PendingLen > 0 {
		p := k.Pending[:k.PendingLen]
		if !utf8.FullRune(p) {
			break
		}
		r, size := utf8.DecodeRune(p)
		k.PendingLen = uint8(copy(k.Pending[:], p[size:]))
		if r == utf8.RuneError && size == 1 {
			continue
		}
		emit(ctx, k, r)
		n++
	}
	return n
}

func emit(ctx *kernel.Context, k *state.Keyboard, r rune) {
	if ctx.Send(msg.Keyboard(r)) {
		k.Keys++
	} else {
		k.Dropped++
	}
}

// Rune maps a key press to the rune the text editor expects. Releases
// and keys without a text meaning are skipped.
func Rune(ev hal.KeyEvent) (rune, bool) {
	if !ev.Press {
		return 0, false
	}
	switch ev.Code {
	case hal.KeyEnter:
		return '\r', true
	case hal.KeyBackspace:
		return state.KeyBackspace, true
	case hal.KeyDelete:
		return state.KeyDelete, true
	case hal.KeyTab:
		return '\t', true
	}
	if ev.Rune == 0 {
		return 0, false
	}
	return ev.Rune, true
}
