package kernel

import (
	"errors"
	"testing"

	"neo/neoui/bus"
	"neo/neoui/metrics"
	"neo/neoui/msg"
	"neo/neoui/stack"
)

type recordTask struct {
	info  Info
	log   *[]string
	id    string
	clock *ManualClock
	cost  uint64
	fn    func(*Context)
}

func (t *recordTask) Run(ctx *Context) {
	if t.log != nil {
		*t.log = append(*t.log, t.id)
	}
	if t.clock != nil {
		t.clock.Advance(t.cost)
	}
	if t.fn != nil {
		t.fn(ctx)
	}
}

func (t *recordTask) Info() *Info { return &t.info }

func newTask(name string, every uint32, log *[]string) *recordTask {
	return &recordTask{
		info: Info{Name: metrics.MakeName(name), RunEveryUS: every},
		log:  log,
		id:   name,
	}
}

func newMgr(clock *ManualClock, mon stack.Monitor) *Mgr {
	b := bus.New[msg.Msg]()
	tx, _ := b.MustChannel()
	return New(Config{Sender: tx, Clock: clock, Stack: mon})
}

func TestRunBeforeFirstPeriodRunsNothing(t *testing.T) {
	clock := &ManualClock{}
	m := newMgr(clock, nil)
	var log []string
	m.MustAddTask(newTask("A", 100, &log))

	if n := m.Run(); n != 0 {
		t.Fatalf("Run() = %d, want 0", n)
	}
	clock.Advance(99)
	if n := m.Run(); n != 0 {
		t.Fatalf("Run() at 99us = %d, want 0", n)
	}
	if len(log) != 0 {
		t.Fatalf("tasks ran: %v", log)
	}
	if m.Metrics().RunCount[0] != 0 {
		t.Fatalf("RunCount = %d, want 0", m.Metrics().RunCount[0])
	}
}

func TestRunPeriods(t *testing.T) {
	clock := &ManualClock{}
	m := newMgr(clock, nil)
	var log []string
	m.MustAddTask(newTask("A", 100, &log))
	m.MustAddTask(newTask("B", 300, &log))

	for i := 0; i < 3; i++ {
		clock.Advance(100)
		m.Run()
	}

	got := m.Metrics().RunCount
	if got[0] != 3 || got[1] != 1 {
		t.Fatalf("RunCount = %d/%d, want 3/1", got[0], got[1])
	}
	want := []string{"A", "A", "A", "B"}
	if len(log) != len(want) {
		t.Fatalf("order = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order = %v, want %v", log, want)
		}
	}
}

func TestRunSameTickOrder(t *testing.T) {
	for _, tc := range []struct {
		order Order
		want  string
	}{
		{OrderRegistration, "ABC"},
		{OrderReverse, "CBA"},
	} {
		clock := &ManualClock{}
		m := New(Config{Clock: clock, Order: tc.order})
		var log []string
		m.MustAddTask(newTask("A", 10, &log))
		m.MustAddTask(newTask("B", 10, &log))
		m.MustAddTask(newTask("C", 10, &log))

		clock.Advance(10)
		if n := m.Run(); n != 3 {
			t.Fatalf("Run() = %d, want 3", n)
		}
		var got string
		for _, s := range log {
			got += s
		}
		if got != tc.want {
			t.Fatalf("order %d: ran %q, want %q", tc.order, got, tc.want)
		}
	}
}

func TestRunRecordsDurationAndStack(t *testing.T) {
	clock := &ManualClock{}
	depth := uint32(120)
	mon := &stack.Stub{Fn: func() uint32 { return depth }, Reserved: 4096}
	m := newMgr(clock, mon)

	task := newTask("Slow", 50, nil)
	task.clock = clock
	task.cost = 700
	m.MustAddTask(task)

	clock.Advance(50)
	m.Run()
	task.cost = 300
	depth = 80
	clock.Advance(50)
	m.Run()

	mt := m.Metrics()
	if mt.RunCount[0] != 2 {
		t.Fatalf("RunCount = %d, want 2", mt.RunCount[0])
	}
	if mt.MaxDurationUS[0] != 700 {
		t.Fatalf("MaxDurationUS = %d, want 700", mt.MaxDurationUS[0])
	}
	if mt.MaxStack[0] != 120 {
		t.Fatalf("MaxStack = %d, want 120", mt.MaxStack[0])
	}
	if mon.Resets != 0 {
		t.Fatalf("scheduler reset the stack monitor %d times", mon.Resets)
	}
}

func TestLastRunIsScheduledTime(t *testing.T) {
	clock := &ManualClock{}
	m := newMgr(clock, nil)
	task := newTask("A", 100, nil)
	task.clock = clock
	task.cost = 40
	m.MustAddTask(task)

	clock.Advance(100)
	m.Run() // ran at 100, clock now 140
	clock.Set(199)
	if n := m.Run(); n != 0 {
		t.Fatalf("Run() at 199 = %d, want 0", n)
	}
	clock.Set(200)
	if n := m.Run(); n != 1 {
		t.Fatalf("Run() at 200 = %d, want 1", n)
	}
}

func TestAddTaskCapacity(t *testing.T) {
	m := New(Config{})
	for i := 0; i < MaxTasks; i++ {
		id, err := m.AddTask(newTask("T", 1000, nil))
		if err != nil {
			t.Fatalf("AddTask(%d) error: %v", i, err)
		}
		if int(id) != i {
			t.Fatalf("AddTask(%d) slot = %d", i, id)
		}
	}
	if _, err := m.AddTask(newTask("X", 1000, nil)); !errors.Is(err, ErrTooManyTasks) {
		t.Fatalf("AddTask(17th) error = %v, want ErrTooManyTasks", err)
	}
	if m.Slots() != MaxTasks {
		t.Fatalf("Slots() = %d, want %d", m.Slots(), MaxTasks)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustAddTask past capacity did not panic")
		}
	}()
	m.MustAddTask(newTask("X", 1000, nil))
}

func TestAddTaskZeroPeriod(t *testing.T) {
	m := New(Config{})
	if _, err := m.AddTask(newTask("Z", 0, nil)); !errors.Is(err, ErrInvalidInfo) {
		t.Fatalf("AddTask() error = %v, want ErrInvalidInfo", err)
	}
	if m.Slots() != 0 {
		t.Fatalf("Slots() = %d after rejected add", m.Slots())
	}
}

func TestAddTaskNamesMetricsSlot(t *testing.T) {
	m := New(Config{})
	id := m.MustAddTask(newTask("Chat", 1000, nil))
	if got := m.Metrics().Name[id].String(); got != "Chat____" {
		t.Fatalf("metrics name = %q", got)
	}
	if m.Info(id) == nil || m.Info(id).RunEveryUS != 1000 {
		t.Fatalf("Info(%d) = %+v", id, m.Info(id))
	}
	if m.Info(id+1) != nil {
		t.Fatal("Info() of unused slot != nil")
	}
}

func TestContextSendsOnBus(t *testing.T) {
	clock := &ManualClock{}
	b := bus.New[msg.Msg]()
	tx, rx := b.MustChannel()
	m := New(Config{Sender: tx, Clock: clock})

	task := newTask("Send", 10, nil)
	task.fn = func(ctx *Context) {
		if ctx.Slot() != 0 || ctx.NowUS() != 10 {
			t.Errorf("ctx slot/now = %d/%d", ctx.Slot(), ctx.NowUS())
		}
		ctx.Send(msg.AiButton(true))
		ctx.Fail(msg.ErrLink, msg.KindLinkTx)
	}
	m.MustAddTask(task)
	clock.Advance(10)
	m.Run()

	if got := msg.Recv(rx); got.Kind != msg.KindAiButton || !got.Pressed {
		t.Fatalf("first message = %+v", got)
	}
	if got := msg.Recv(rx); got.Kind != msg.KindError || got.Code != msg.ErrLink || got.Ref != msg.KindLinkTx {
		t.Fatalf("second message = %+v", got)
	}
}

func TestPanicReportedAndPropagated(t *testing.T) {
	var got []PanicInfo
	SetPanicHandler(func(p PanicInfo) { got = append(got, p) })
	t.Cleanup(func() { SetPanicHandler(nil) })

	clock := &ManualClock{}
	m := newMgr(clock, nil)
	var log []string
	m.MustAddTask(newTask("Ok", 10, &log))
	bad := newTask("Bad", 10, &log)
	bad.fn = func(*Context) { panic("boom") }
	m.MustAddTask(bad)
	clock.Advance(10)

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("recovered %v, want boom", r)
			}
		}()
		m.Run()
		t.Fatal("Run() returned after a task panic")
	}()

	if len(got) != 1 {
		t.Fatalf("handler calls = %d, want 1", len(got))
	}
	if got[0].Slot != 1 || got[0].Name.String() != "Bad_____" || got[0].Value != "boom" {
		t.Fatalf("PanicInfo = %+v", got[0])
	}
	if len(got[0].Stack) == 0 {
		t.Fatal("PanicInfo.Stack empty")
	}
	if !InPanicMode() {
		t.Fatal("InPanicMode() = false")
	}
	if m.Metrics().RunCount[1] != 0 {
		t.Fatal("faulted run was recorded")
	}
}
