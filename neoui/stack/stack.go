// Package stack probes stack consumption for the scheduler's metrics.
package stack

// Monitor reports stack usage in bytes.
//
// usage is the high-water depth since the last reset, current is the depth
// at the call, reserved is the size set aside for the stack. A true reset
// moves the high-water reference to the current depth first.
type Monitor interface {
	Usage(reset bool) (usage, current, reserved uint32)
}

// Nop reports zero for everything.
type Nop struct{}

func (Nop) Usage(bool) (uint32, uint32, uint32) { return 0, 0, 0 }

// Stub returns fixed values, or the result of Fn when set. Host tests use
// it to drive the scheduler's stack accounting.
type Stub struct {
	Fn       func() uint32
	Current  uint32
	Reserved uint32

	high   uint32
	Calls  int
	Resets int
}

func (s *Stub) Usage(reset bool) (usage, current, reserved uint32) {
	s.Calls++
	cur := s.Current
	if s.Fn != nil {
		cur = s.Fn()
	}
	if reset {
		s.Resets++
		s.high = cur
	}
	if cur > s.high {
		s.high = cur
	}
	return s.high, cur, s.Reserved
}

// paintHeadroom is left unpainted below the painter's own frame.
const paintHeadroom = 64

// paintable reports whether sp lies inside [bottom, top) with room for
// the painter's headroom, so painting up to sp cannot leave the region.
func paintable(sp, bottom, top uintptr) bool {
	return bottom < top && sp >= bottom+paintHeadroom && sp < top
}
