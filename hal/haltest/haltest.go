// Package haltest is an in-memory HAL for tests.
package haltest

import (
	"bytes"
	"errors"

	"neo/hal"
)

// HAL is a fully in-memory board. Every field may be inspected or
// replaced by the test before use.
type HAL struct {
	ConsoleBuf bytes.Buffer
	ConsoleErr error
	Lines      []string
	LEDColor   hal.Color
	LEDSets    int
	Pins       [2]*Pin
	SerialIn   bytes.Buffer
	SerialOut  bytes.Buffer
	FB         *Framebuffer
	Keys       chan hal.KeyEvent
	Now        uint64
	Net        *Network
}

// New returns a board with released buttons, a 64x48 framebuffer and a
// loopback-free network.
func New() *HAL {
	return &HAL{
		Pins: [2]*Pin{{Level: true}, {Level: true}},
		FB:   NewFramebuffer(64, 48),
		Keys: make(chan hal.KeyEvent, 16),
		Net:  &Network{},
	}
}

var _ hal.HAL = (*HAL)(nil)

func (h *HAL) Console() hal.Console { return console{h} }

// console fails every write with ConsoleErr when it is set.
type console struct{ h *HAL }

func (c console) Write(p []byte) (int, error) {
	if c.h.ConsoleErr != nil {
		return 0, c.h.ConsoleErr
	}
	return c.h.ConsoleBuf.Write(p)
}
func (h *HAL) Logger() hal.Logger   { return logger{h} }
func (h *HAL) LED() hal.LED         { return led{h} }
func (h *HAL) GPIO() hal.GPIO       { return gpio{h} }
func (h *HAL) Serial() hal.Serial   { return serial{h} }
func (h *HAL) Display() hal.Display { return display{h} }
func (h *HAL) Input() hal.Input     { return input{h} }
func (h *HAL) Clock() hal.Clock     { return clock{h} }
func (h *HAL) Network() hal.Network {
	if h.Net == nil {
		return nil
	}
	return h.Net
}

// Advance moves the clock forward.
func (h *HAL) Advance(us uint64) { h.Now += us }

// Press sets a button pin low (pressed) or high (released).
func (h *HAL) Press(pin int, down bool) { h.Pins[pin].Level = !down }

type logger struct{ h *HAL }

func (l logger) WriteLineString(s string) { l.h.Lines = append(l.h.Lines, s) }
func (l logger) WriteLineBytes(b []byte)  { l.h.Lines = append(l.h.Lines, string(b)) }

type led struct{ h *HAL }

func (l led) Set(c hal.Color) {
	l.h.LEDColor = c
	l.h.LEDSets++
}

func (l led) Color() hal.Color { return l.h.LEDColor }

type clock struct{ h *HAL }

func (c clock) NowUS() uint64 { return c.h.Now }

type serial struct{ h *HAL }

func (s serial) Read(p []byte) (int, error)  { return s.h.SerialIn.Read(p) }
func (s serial) Write(p []byte) (int, error) { return s.h.SerialOut.Write(p) }
func (s serial) Buffered() int               { return s.h.SerialIn.Len() }

type input struct{ h *HAL }

func (in input) Keyboard() hal.Keyboard { return keyboard{in.h} }

type keyboard struct{ h *HAL }

func (k keyboard) Events() <-chan hal.KeyEvent { return k.h.Keys }

type display struct{ h *HAL }

func (d display) Framebuffer() hal.Framebuffer {
	if d.h.FB == nil {
		return nil
	}
	return d.h.FB
}

// ErrRead is returned by a Pin with Fail set.
var ErrRead = errors.New("haltest: pin read failed")

// Pin is a GPIO pin whose level the test controls.
type Pin struct {
	Level bool
	Fail  bool
	Mode  hal.GPIOMode
	Pull  hal.GPIOPull
}

func (p *Pin) Name() string { return "test" }
func (p *Pin) Caps() hal.GPIOCaps {
	return hal.GPIOCapInput | hal.GPIOCapOutput | hal.GPIOCapPullUp | hal.GPIOCapPullDown
}

func (p *Pin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	if err := hal.CheckPinConfig(p.Name(), p.Caps(), mode, pull); err != nil {
		return err
	}
	p.Mode, p.Pull = mode, pull
	return nil
}

func (p *Pin) Read() (bool, error) {
	if p.Fail {
		return false, ErrRead
	}
	return p.Level, nil
}

func (p *Pin) Write(level bool) error {
	p.Level = level
	return nil
}

type gpio struct{ h *HAL }

func (g gpio) PinCount() int { return len(g.h.Pins) }

func (g gpio) Pin(id int) hal.GPIOPin {
	if id < 0 || id >= len(g.h.Pins) || g.h.Pins[id] == nil {
		return nil
	}
	return g.h.Pins[id]
}

// Framebuffer is an RGB565 buffer that counts presents.
type Framebuffer struct {
	W, H     int
	Buf      []byte
	Presents int
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{W: w, H: h, Buf: make([]byte, w*h*2)}
}

func (f *Framebuffer) Width() int              { return f.W }
func (f *Framebuffer) Height() int             { return f.H }
func (f *Framebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *Framebuffer) StrideBytes() int        { return f.W * 2 }
func (f *Framebuffer) Buffer() []byte          { return f.Buf }
func (f *Framebuffer) Present() error          { f.Presents++; return nil }

func (f *Framebuffer) ClearRGB(r, g, b uint8) {
	for i := range f.Buf {
		f.Buf[i] = 0
	}
}

// Lit counts pixels that are not black.
func (f *Framebuffer) Lit() int {
	n := 0
	for i := 0; i+1 < len(f.Buf); i += 2 {
		if f.Buf[i] != 0 || f.Buf[i+1] != 0 {
			n++
		}
	}
	return n
}

// Network records sent packets and serves queued received ones.
type Network struct {
	Sent    [][]byte
	Inbox   [][]byte
	SendErr error
	RecvErr error
}

func (n *Network) Send(pkt []byte) error {
	if n.SendErr != nil {
		return n.SendErr
	}
	n.Sent = append(n.Sent, append([]byte(nil), pkt...))
	return nil
}

func (n *Network) Recv(pkt []byte) (int, error) {
	if n.RecvErr != nil {
		return 0, n.RecvErr
	}
	if len(n.Inbox) == 0 {
		return 0, nil
	}
	p := n.Inbox[0]
	n.Inbox = n.Inbox[1:]
	return copy(pkt, p), nil
}
