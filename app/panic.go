package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"neo/hal"
	"neo/neoui/display"
	"neo/neoui/kernel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if led := h.LED(); led != nil {
			led.Set(hal.Red)
		}

		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		drawPanicOn(h, lines)
	})
}

func drawPanicOn(h hal.HAL, lines []string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	drawPanic(display.New(fb), lines)
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"Neo panic:",
		fmt.Sprintf("task: %s (slot %d)", info.Name, info.Slot),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func drawPanic(d *display.FB, lines []string) {
	font := &proggy.TinySZ8pt7b
	fontHeight, fontOffset := display.LineMetrics(font)
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	maxW, maxH := d.Size()
	if fontWidth <= 0 || fontHeight <= 0 || maxW <= 0 {
		return
	}

	d.Clear(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fg := color.RGBA{A: 255}
	cols := maxW / fontWidth

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = d.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(d, font, x, y+fontOffset, r, fg)
				x += fontWidth
			}
			y += fontHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = d.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
