//go:build tinygo && baremetal

package stack

import "unsafe"

// Symbols from the TinyGo linker script: the main stack occupies
// [_stack_top-_stack_size, _stack_top).
//
//go:extern _stack_top
var stackTopSym [0]byte

//go:extern _stack_size
var stackSizeSym [0]byte

const paintWord = 0xA5A5A5A5

// Paint scans a painted main stack for the deepest overwritten word.
type Paint struct {
	top    uintptr
	bottom uintptr
	mark   uintptr
}

// NewPaint fills the unused part of the system stack with a known pattern.
//
// The scan only means something when the caller runs on that stack, as
// main does under -scheduler=none. With the tasks scheduler main runs on a
// heap-allocated goroutine stack; painting below its frame would overwrite
// globals and the heap, so NewPaint returns Nop instead.
//
//go:noinline
func NewPaint() Monitor {
	top := uintptr(unsafe.Pointer(&stackTopSym))
	size := uintptr(unsafe.Pointer(&stackSizeSym))
	p := &Paint{top: top, bottom: top - size}
	if !paintable(currentSP(), p.bottom, p.top) {
		return Nop{}
	}
	p.paint()
	return p
}

//go:noinline
func (p *Paint) paint() {
	sp := currentSP()
	if !paintable(sp, p.bottom, p.top) {
		return
	}
	limit := sp - paintHeadroom
	for a := p.bottom; a+4 <= limit; a += 4 {
		*(*uint32)(unsafe.Pointer(a)) = paintWord
	}
	p.mark = p.bottom
}

func (p *Paint) Usage(reset bool) (usage, current, reserved uint32) {
	reserved = uint32(p.top - p.bottom)
	sp := currentSP()
	if !paintable(sp, p.bottom, p.top) {
		return 0, 0, reserved
	}
	current = uint32(p.top - sp)
	if reset {
		p.paint()
		return current, current, reserved
	}
	a := p.mark
	for a < p.top && *(*uint32)(unsafe.Pointer(a)) == paintWord {
		a += 4
	}
	p.mark = a
	usage = uint32(p.top - a)
	return usage, current, reserved
}

//go:noinline
func currentSP() uintptr {
	var probe uint32
	return uintptr(unsafe.Pointer(&probe))
}
