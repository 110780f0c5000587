package render

import (
	"image/color"
	"strconv"
	"unicode/utf8"

	"neo/hal"
	"neo/neoui/display"
	"neo/neoui/state"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

var (
	background = color.RGBA{A: 255}
	statusBG   = color.RGBA{R: 0x20, G: 0x20, B: 0x30, A: 255}
	statusTX   = color.RGBA{R: 0x90, G: 0x10, B: 0x10, A: 255}
	statusFG   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 255}
	editFG     = color.RGBA{R: 0xff, G: 0xd0, B: 0x40, A: 255}
)

var newline = []byte{'\n'}

// Screen splits the framebuffer in three bands: a status line at the top,
// the chat transcript in the middle and the edit line at the bottom.
type Screen struct {
	root       *display.FB
	status     *display.FB
	transcript *display.FB
	edit       *display.FB
	term       *tinyterm.Terminal

	font   tinyfont.Fonter
	lineH  int16
	offset int16
}

// NewScreen lays out fb. It returns nil when fb cannot hold the three bands.
func NewScreen(fb hal.Framebuffer) *Screen {
	root := display.New(fb)
	font := &proggy.TinySZ8pt7b
	lineH, offset := display.LineMetrics(font)
	_, h := root.Size()
	if lineH <= 0 || h < 3*lineH {
		return nil
	}

	s := &Screen{
		root:       root,
		status:     root.Sub(0, lineH),
		transcript: root.Sub(lineH, h-2*lineH),
		edit:       root.Sub(h-lineH, lineH),
		font:       font,
		lineH:      lineH,
		offset:     offset,
	}
	s.term = tinyterm.NewTerminal(s.transcript)
	s.term.Configure(&tinyterm.Config{
		Font:              font,
		FontHeight:        lineH,
		FontOffset:        offset,
		UseSoftwareScroll: true,
	})
	root.Clear(background)
	return s
}

// AppendLine adds one transcript line.
func (s *Screen) AppendLine(b []byte) {
	_, _ = s.term.Write(b)
	_, _ = s.term.Write(newline)
}

// Draw repaints the status and edit lines and presents the frame.
func (s *Screen) Draw(r *state.Render) error {
	bg := statusBG
	if r.PTT {
		bg = statusTX
	}
	var buf [64]byte
	s.status.Clear(bg)
	s.text(s.status, statusLine(buf[:0], r), statusFG)

	s.edit.Clear(background)
	line := append(buf[:0], "> "...)
	line = append(line, r.Edit.Bytes()...)
	s.text(s.edit, line, editFG)

	return s.root.Display()
}

func (s *Screen) text(d *display.FB, b []byte, c color.RGBA) {
	x := int16(0)
	w, _ := d.Size()
	for len(b) > 0 && x < w {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		tinyfont.DrawChar(d, s.font, x, s.offset, r, c)
		x += int16(s.font.GetGlyph(r).Info().XAdvance)
	}
}

func statusLine(dst []byte, r *state.Render) []byte {
	dst = append(dst, "NEO"...)
	if r.PTT {
		dst = append(dst, " TX"...)
	}
	if r.Errors > 0 {
		dst = append(dst, " ERR "...)
		dst = append(dst, r.LastError.String()...)
		dst = append(dst, '@')
		dst = append(dst, r.LastErrorRef.String()...)
		dst = append(dst, " x"...)
		dst = strconv.AppendUint(dst, uint64(r.Errors), 10)
	}
	return dst
}
