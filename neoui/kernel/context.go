package kernel

import (
	"neo/hal"
	"neo/neoui/metrics"
	"neo/neoui/msg"
	"neo/neoui/state"
)

// Context is the shared state a task gets for the duration of one Run.
//
// It is owned by the scheduler. A task touches only its own field of Data;
// the single-threaded loop is what keeps that safe, not the type system.
type Context struct {
	Sender  msg.Sender
	BSP     hal.HAL
	Data    *state.TaskData
	Metrics *metrics.Metrics

	slot  SlotID
	nowUS uint64
}

// Slot returns the slot of the running task.
func (c *Context) Slot() SlotID { return c.slot }

// NowUS returns the clock value the running task was scheduled at.
func (c *Context) NowUS() uint64 { return c.nowUS }

// Send queues m on the bus. Delivery is best effort.
func (c *Context) Send(m msg.Msg) bool {
	return msg.Send(c.Sender, m)
}

// Fail reports a task-level failure on the bus.
func (c *Context) Fail(code msg.ErrCode, ref msg.Kind) {
	_ = msg.Send(c.Sender, msg.Error(code, ref))
}
