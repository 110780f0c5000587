package display

import (
	"image/color"
	"testing"

	"neo/hal"

	"tinygo.org/x/tinyfont/proggy"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int               { return f.w }
func (f *testFB) Height() int              { return f.h }
func (f *testFB) Format() hal.PixelFormat  { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int         { return f.w * 2 }
func (f *testFB) Buffer() []byte           { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)   {}
func (f *testFB) Present() error           { f.presents++; return nil }
func (f *testFB) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestSetPixelClips(t *testing.T) {
	fb := newTestFB(4, 4)
	d := New(fb)
	d.SetPixel(1, 2, white)
	d.SetPixel(-1, 0, white)
	d.SetPixel(4, 4, white)

	if got := fb.pixel(1, 2); got != 0xFFFF {
		t.Fatalf("pixel(1,2) = %#04x, want 0xffff", got)
	}
	n := 0
	for _, b := range fb.buf {
		if b != 0 {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("%d bytes written, want 2", n)
	}
}

func TestSubOffsetsRows(t *testing.T) {
	fb := newTestFB(4, 6)
	band := New(fb).Sub(2, 3)
	if w, h := band.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %d,%d, want 4,3", w, h)
	}
	band.SetPixel(0, 0, white)
	band.SetPixel(0, 3, white) // outside the band
	if fb.pixel(0, 2) != 0xFFFF {
		t.Fatal("band row 0 not at framebuffer row 2")
	}
	if fb.pixel(0, 5) != 0 {
		t.Fatal("write outside band reached framebuffer")
	}
}

func TestScrollUpStaysInBand(t *testing.T) {
	fb := newTestFB(2, 5)
	root := New(fb)
	root.SetPixel(0, 0, white) // above the band
	band := root.Sub(1, 3)
	band.SetPixel(1, 2, white)

	if err := band.ScrollUp(1, color.RGBA{}); err != nil {
		t.Fatalf("ScrollUp() error: %v", err)
	}
	if fb.pixel(1, 2) != 0xFFFF {
		t.Fatal("row not moved up")
	}
	if fb.pixel(1, 3) != 0 {
		t.Fatal("exposed row not cleared")
	}
	if fb.pixel(0, 0) != 0xFFFF {
		t.Fatal("scroll touched rows above the band")
	}
}

func TestNilFramebuffer(t *testing.T) {
	d := New(nil)
	d.SetPixel(0, 0, white)
	d.Clear(white)
	if err := d.ScrollUp(1, white); err != nil {
		t.Fatalf("ScrollUp() error: %v", err)
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display() error: %v", err)
	}
}

func TestLineMetrics(t *testing.T) {
	h, off := LineMetrics(&proggy.TinySZ8pt7b)
	if h <= 0 {
		t.Fatalf("height = %d", h)
	}
	if off < 0 || off > h {
		t.Fatalf("offset = %d outside [0,%d]", off, h)
	}
}
