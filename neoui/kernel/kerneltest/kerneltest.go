// Package kerneltest runs tasks against an in-memory board.
package kerneltest

import (
	"testing"

	"neo/hal/haltest"
	"neo/neoui/bus"
	"neo/neoui/kernel"
	"neo/neoui/msg"
	"neo/neoui/stack"
	"neo/neoui/state"
)

// Harness is one scheduler wired to a haltest board.
type Harness struct {
	HAL   *haltest.HAL
	Bus   *bus.Bus[msg.Msg]
	Rx    msg.Receiver
	Mgr   *kernel.Mgr
	Stack *stack.Stub
}

// New registers tasks on a fresh scheduler.
func New(t testing.TB, tasks ...kernel.Task) *Harness {
	t.Helper()
	h := &Harness{
		HAL:   haltest.New(),
		Bus:   bus.New[msg.Msg](),
		Stack: &stack.Stub{Current: 64, Reserved: 4096},
	}
	tx, rx, err := h.Bus.Channel()
	if err != nil {
		t.Fatalf("Channel() error: %v", err)
	}
	h.Rx = rx
	h.Mgr = kernel.New(kernel.Config{
		Sender: tx,
		BSP:    h.HAL,
		Clock:  h.HAL.Clock(),
		Stack:  h.Stack,
	})
	for _, task := range tasks {
		if _, err := h.Mgr.AddTask(task); err != nil {
			t.Fatalf("AddTask() error: %v", err)
		}
	}
	return h
}

// Data returns the shared task state.
func (h *Harness) Data() *state.TaskData { return h.Mgr.Data() }

// Tick advances the clock by us and runs one scheduler pass.
func (h *Harness) Tick(us uint64) int {
	h.HAL.Advance(us)
	return h.Mgr.Run()
}

// Drain pops every queued event without routing it.
func (h *Harness) Drain() []msg.Msg {
	var out []msg.Msg
	for {
		m := msg.Recv(h.Rx)
		if m.IsNone() {
			return out
		}
		out = append(out, m)
	}
}
