//go:build !tinygo

package stack

import (
	"runtime/debug"
	"runtime/metrics"
)

// Runtime approximates the probe on the host with the Go runtime's stack
// statistics. The figure is process-wide: it counts the stacks of every
// goroutine (window, MQTT client, exporter), not only the task's.
// Goroutine stacks grow on demand, so reserved is the runtime's
// per-goroutine ceiling rather than a fixed region.
type Runtime struct {
	base uint32
	high uint32
}

// NewRuntime takes the current stack footprint as the zero reference.
func NewRuntime() *Runtime {
	r := &Runtime{}
	r.base = stackInUse()
	return r
}

func (r *Runtime) Usage(reset bool) (usage, current, reserved uint32) {
	cur := stackInUse()
	if cur > r.base {
		current = cur - r.base
	}
	if reset {
		r.high = current
	}
	if current > r.high {
		r.high = current
	}
	return r.high, current, maxStack()
}

const stackMetric = "/memory/classes/heap/stacks:bytes"

// stackInUse reads the runtime's stack total. runtime/metrics does not
// stop the world, unlike ReadMemStats.
func stackInUse() uint32 {
	sample := [1]metrics.Sample{{Name: stackMetric}}
	metrics.Read(sample[:])
	if sample[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	v := sample[0].Value.Uint64()
	if v > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(v)
}

func maxStack() uint32 {
	prev := debug.SetMaxStack(1 << 30)
	debug.SetMaxStack(prev)
	if prev > 1<<31 {
		return 1 << 31
	}
	return uint32(prev)
}
