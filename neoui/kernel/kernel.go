// Package kernel is the cooperative task scheduler.
//
// Tasks are registered once at startup and then polled forever. Each call
// to Mgr.Run walks the slots in order and invokes every task whose period
// has elapsed. Nothing preempts a task: a task that blocks or overruns its
// budget stalls everything behind it.
package kernel

import (
	"errors"

	"neo/hal"
	"neo/neoui/metrics"
	"neo/neoui/msg"
	"neo/neoui/stack"
	"neo/neoui/state"
)

// MaxTasks is the number of task slots.
const MaxTasks = metrics.MaxTasks

var (
	// ErrTooManyTasks is returned when registering past MaxTasks.
	ErrTooManyTasks = errors.New("kernel: too many tasks")
	// ErrInvalidInfo is returned for a task with a zero period.
	ErrInvalidInfo = errors.New("kernel: invalid task info")
)

// SlotID indexes a registered task. It is also the metrics slot.
type SlotID uint8

// Info is the constant descriptor of a task variant.
type Info struct {
	Name           metrics.Name
	RunEveryUS     uint32
	TimeBudgetUS   uint32
	MemBudgetBytes uint32
}

// Task is a cooperative unit of execution.
//
// Run must return promptly, without blocking, inside the time budget of
// its Info. Failures are reported by sending msg.KindError, never by
// returning. Info returns the same descriptor on every call.
type Task interface {
	Run(*Context)
	Info() *Info
}

// Order is the policy for tasks due in the same tick.
type Order uint8

const (
	// OrderRegistration runs due tasks in the order they were added.
	OrderRegistration Order = iota
	// OrderReverse runs due tasks last-registered first.
	OrderReverse
)

// Config wires a Mgr to the shared context it hands to tasks.
type Config struct {
	Sender  msg.Sender
	BSP     hal.HAL
	Data    *state.TaskData
	Metrics *metrics.Metrics
	Clock   hal.Clock
	Stack   stack.Monitor
	Order   Order
}

type slot struct {
	task      Task
	info      *Info
	lastRunUS uint64
}

// Mgr owns the task registry and the shared task context.
type Mgr struct {
	slots     [MaxTasks]slot
	slotCount SlotID

	ctx   Context
	clock hal.Clock
	stack stack.Monitor
	order Order
}

// New creates a scheduler. Missing Metrics and Data are allocated once
// here; a missing Stack monitor reports zero.
func New(cfg Config) *Mgr {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.Data == nil {
		cfg.Data = &state.TaskData{}
	}
	if cfg.Stack == nil {
		cfg.Stack = stack.Nop{}
	}
	if cfg.Clock == nil && cfg.BSP != nil {
		cfg.Clock = cfg.BSP.Clock()
	}
	if cfg.Clock == nil {
		cfg.Clock = &ManualClock{}
	}
	m := &Mgr{
		clock: cfg.Clock,
		stack: cfg.Stack,
		order: cfg.Order,
	}
	m.ctx = Context{
		Sender:  cfg.Sender,
		BSP:     cfg.BSP,
		Data:    cfg.Data,
		Metrics: cfg.Metrics,
	}
	return m
}

// AddTask registers t and returns its slot. The first run happens one
// full period after registration.
func (m *Mgr) AddTask(t Task) (SlotID, error) {
	if m.slotCount >= MaxTasks {
		return 0, ErrTooManyTasks
	}
	info := t.Info()
	if info == nil || info.RunEveryUS == 0 {
		return 0, ErrInvalidInfo
	}
	id := m.slotCount
	m.slotCount++
	m.slots[id] = slot{task: t, info: info, lastRunUS: m.clock.NowUS()}
	m.ctx.Metrics.SetName(int(id), info.Name)
	m.ctx.Metrics.SetBudget(int(id), info.TimeBudgetUS, info.MemBudgetBytes)
	return id, nil
}

// MustAddTask is like AddTask but panics on error.
func (m *Mgr) MustAddTask(t Task) SlotID {
	id, err := m.AddTask(t)
	if err != nil {
		panic(err)
	}
	return id
}

// Slots returns the number of registered tasks.
func (m *Mgr) Slots() int { return int(m.slotCount) }

// Info returns the descriptor of a registered slot, or nil.
func (m *Mgr) Info(id SlotID) *Info {
	if id >= m.slotCount {
		return nil
	}
	return m.slots[id].info
}

// Metrics returns the counters the scheduler updates.
func (m *Mgr) Metrics() *metrics.Metrics { return m.ctx.Metrics }

// Data returns the shared task state.
func (m *Mgr) Data() *state.TaskData { return m.ctx.Data }

// Sender returns the bus handle given to tasks.
func (m *Mgr) Sender() msg.Sender { return m.ctx.Sender }

// Run performs one scheduler tick and returns how many tasks ran.
func (m *Mgr) Run() int {
	ran := 0
	n := m.slotCount
	for i := SlotID(0); i < n; i++ {
		id := i
		if m.order == OrderReverse {
			id = n - 1 - i
		}
		if m.runIfDue(id) {
			ran++
		}
	}
	return ran
}

func (m *Mgr) runIfDue(id SlotID) bool {
	s := &m.slots[id]
	now := m.clock.NowUS()
	if now-s.lastRunUS < uint64(s.info.RunEveryUS) {
		return false
	}

	m.invoke(s, id, now)

	elapsed := m.clock.NowUS() - now
	if elapsed > 0xFFFFFFFF {
		elapsed = 0xFFFFFFFF
	}
	usage, _, _ := m.stack.Usage(false)
	m.ctx.Metrics.Record(int(id), usage, uint32(elapsed))
	s.lastRunUS = now
	return true
}

func (m *Mgr) invoke(s *slot, id SlotID, now uint64) {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{Slot: id, Name: s.info.Name, Value: r})
			panic(r)
		}
	}()
	m.ctx.slot = id
	m.ctx.nowUS = now
	s.task.Run(&m.ctx)
}
