//go:build !tinygo

package hal

import (
	"sync"
	"sync/atomic"
)

// hostFramebuffer is the simulated display. Present bumps a frame counter
// so the window only converts frames that changed.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []byte
	frame  atomic.Uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.width * 2 }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.frame.Add(1)
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(pixel)
		f.buf[i+1] = byte(pixel >> 8)
	}
}

// snapshot copies the buffer into dst if a frame newer than since was
// presented, and returns the current frame number.
func (f *hostFramebuffer) snapshot(dst []byte, since uint64) (uint64, bool) {
	frame := f.frame.Load()
	if frame == since {
		return frame, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
	return frame, true
}
