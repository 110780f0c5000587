package display

import "tinygo.org/x/tinyfont"

// LineMetrics derives the terminal cell height and baseline offset of f
// from the extents of its printable ASCII glyphs.
//
// The height is the font's Y advance (or the glyph box if it has none).
// The offset balances clipping at the top and bottom of the cell.
func LineMetrics(f tinyfont.Fonter) (height, offset int16) {
	minY, maxY := 0, 0
	first := true
	for r := rune(0x21); r < 0x7f; r++ {
		info := f.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		if first || top < minY {
			minY = top
		}
		if first || bottom > maxY {
			maxY = bottom
		}
		first = false
	}
	if first {
		return int16(f.GetYAdvance()), 0
	}

	h := int(f.GetYAdvance())
	if h <= 0 {
		h = maxY - minY
	}
	off := (h - maxY - minY) / 2
	if off < 0 {
		off = 0
	}
	if off > h {
		off = h
	}
	return int16(h), int16(off)
}
