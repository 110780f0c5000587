package kernel

import (
	"sync"
	"sync/atomic"

	"neo/neoui/metrics"
)

// PanicInfo describes a fault raised inside a task.
type PanicInfo struct {
	Slot  SlotID
	Name  metrics.Name
	Value any
	Stack []byte
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has faulted.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide fault handler.
//
// The handler runs at most once, on the first fault, before the panic
// continues to unwind and halts the firmware. It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
