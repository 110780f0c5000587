// Package fib is a synthetic CPU load task.
package fib

import (
	"neo/neoui/kernel"
	"neo/neoui/metrics"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Fib"),
	RunEveryUS:     1_000_000,
	TimeBudgetUS:   50_000,
	MemBudgetBytes: 2_000,
}

// DefaultN is the term computed when TaskData.Fib.N is zero.
const DefaultN = 24

type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	f := &ctx.Data.Fib
	n := f.N
	if n == 0 {
		n = DefaultN
	}
	f.Result = Fib(n)
}

// Fib returns the n'th Fibonacci number, recursively so the stack and
// the clock both have something to measure.
func Fib(n uint32) uint64 {
	if n < 2 {
		return uint64(n)
	}
	return Fib(n-1) + Fib(n-2)
}
