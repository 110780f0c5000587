// Package display adapts a HAL framebuffer to the TinyGo display driver
// interfaces so tinyfont and tinyterm can draw into it.
package display

import (
	"image/color"

	"neo/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*FB)(nil)

// FB is a rectangular view of an RGB565 framebuffer.
//
// Coordinates are relative to the view. Writes outside it are clipped.
type FB struct {
	fb     hal.Framebuffer
	x0, y0 int
	w, h   int
}

// New returns a view of the whole framebuffer. fb may be nil, in which
// case every operation is a no-op.
func New(fb hal.Framebuffer) *FB {
	d := &FB{fb: fb}
	if fb != nil && fb.Format() == hal.PixelFormatRGB565 && fb.Buffer() != nil {
		d.w, d.h = fb.Width(), fb.Height()
	}
	return d
}

// Sub returns the band of rows [y, y+height) of d.
func (d *FB) Sub(y, height int16) *FB {
	y0 := clampInt(int(y), 0, d.h)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	return &FB{fb: d.fb, x0: d.x0, y0: d.y0 + y0, w: d.w, h: y1 - y0}
}

func (d *FB) Size() (x, y int16) {
	return int16(d.w), int16(d.h)
}

func (d *FB) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}
	buf := d.fb.Buffer()
	off := (d.y0+iy)*d.fb.StrideBytes() + (d.x0+ix)*2
	if off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display presents the whole framebuffer.
func (d *FB) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// ScrollUp moves the view's content up by lines rows and clears the rows
// exposed at the bottom.
func (d *FB) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 || d.w == 0 || d.h == 0 {
		return nil
	}
	if n >= d.h {
		return d.FillRectangle(0, 0, int16(d.w), int16(d.h), bg)
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	rowBytes := d.w * 2
	for row := 0; row < d.h-n; row++ {
		dst := (d.y0+row)*stride + d.x0*2
		src := (d.y0+row+n)*stride + d.x0*2
		if src+rowBytes > len(buf) {
			break
		}
		copy(buf[dst:dst+rowBytes], buf[src:src+rowBytes])
	}
	return d.FillRectangle(0, int16(d.h-n), int16(d.w), int16(n), bg)
}

func (d *FB) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := (d.y0 + py) * stride
		for px := x0; px < x1; px++ {
			off := row + (d.x0+px)*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// Clear fills the view with c.
func (d *FB) Clear(c color.RGBA) {
	_ = d.FillRectangle(0, 0, int16(d.w), int16(d.h), c)
}

// SetScroll is a no-op: there is no hardware scroll. Terminals drawing
// into an FB must use software scroll.
func (d *FB) SetScroll(line int16) {}

func (d *FB) SetRotation(rotation drivers.Rotation) error {
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
