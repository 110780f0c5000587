package stack

import "testing"

func TestStubHighWater(t *testing.T) {
	vals := []uint32{100, 300, 200}
	i := 0
	s := &Stub{Reserved: 4096, Fn: func() uint32 {
		v := vals[i]
		i++
		return v
	}}

	var usage, cur, res uint32
	for range vals {
		usage, cur, res = s.Usage(false)
	}
	if usage != 300 || cur != 200 || res != 4096 {
		t.Fatalf("Usage() = %d/%d/%d, want 300/200/4096", usage, cur, res)
	}
	if s.Calls != 3 {
		t.Fatalf("Calls = %d, want 3", s.Calls)
	}
}

func TestStubReset(t *testing.T) {
	s := &Stub{Current: 500}
	s.Usage(false)
	s.Current = 50
	usage, _, _ := s.Usage(true)
	if usage != 50 {
		t.Fatalf("Usage(true) = %d, want 50", usage)
	}
	if s.Resets != 1 {
		t.Fatalf("Resets = %d, want 1", s.Resets)
	}
}

func TestNop(t *testing.T) {
	var m Monitor = Nop{}
	if a, b, c := m.Usage(true); a != 0 || b != 0 || c != 0 {
		t.Fatal("Nop reported non-zero usage")
	}
}

func TestRuntimeReportsReserved(t *testing.T) {
	r := NewRuntime()
	usage, cur, reserved := r.Usage(false)
	if reserved == 0 {
		t.Fatal("reserved = 0, want runtime max stack")
	}
	if usage < cur {
		t.Fatalf("usage %d below current %d", usage, cur)
	}
}

func TestPaintable(t *testing.T) {
	const bottom, top = 0x2000_0000, 0x2000_1000
	for _, tc := range []struct {
		sp   uintptr
		want bool
	}{
		{bottom + 0x800, true},
		{top - 4, true},
		{top, false},
		{top + 0x4000, false}, // goroutine stack on the heap
		{bottom - 4, false},
		{bottom + paintHeadroom - 4, false},
	} {
		if got := paintable(tc.sp, bottom, top); got != tc.want {
			t.Fatalf("paintable(%#x) = %v, want %v", tc.sp, got, tc.want)
		}
	}
	if paintable(bottom+0x800, top, bottom) {
		t.Fatal("inverted region is paintable")
	}
}

func TestStackInUseReadsRuntime(t *testing.T) {
	if stackInUse() == 0 {
		t.Fatal("stackInUse() = 0, want the runtime's stack bytes")
	}
}
