package fib

import (
	"testing"

	"neo/neoui/kernel/kerneltest"
)

func TestFib(t *testing.T) {
	want := map[uint32]uint64{0: 0, 1: 1, 2: 1, 6: 8, 10: 55, 20: 6765}
	for n, v := range want {
		if got := Fib(n); got != v {
			t.Fatalf("Fib(%d) = %d, want %d", n, got, v)
		}
	}
}

func TestFibTask(t *testing.T) {
	h := kerneltest.New(t, Task{})
	h.Data().Fib.N = 6
	h.Tick(uint64(Info.RunEveryUS))
	if h.Data().Fib.Result != 8 {
		t.Fatalf("Result = %d, want 8", h.Data().Fib.Result)
	}
	if h.Mgr.Metrics().RunCount[0] != 1 {
		t.Fatalf("RunCount = %d, want 1", h.Mgr.Metrics().RunCount[0])
	}
}
