// Package hal is the board support capability set handed to every task.
//
// The firmware core only sees these interfaces. TinyGo builds bind them to
// machine peripherals; host builds bind them to stdout/stdin, an in-memory
// framebuffer and virtual pins.
package hal

import "errors"

// Console is the raw byte console. On hardware it is the debug UART.
// Report lines are written through it verbatim.
type Console interface {
	Write(p []byte) (int, error)
}

// Logger writes newline-delimited diagnostic lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is the RGB status LED.
type LED interface {
	Set(c Color)
	Color() Color
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Serial is the UART. Buffered reports how many bytes Read can return
// without blocking; tasks must check it before reading.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Buffered() int
}

// Clock is the monotonic microsecond timebase the scheduler runs on.
type Clock interface {
	NowUS() uint64
}

// Network is the radio link packet transport.
//
// Recv never blocks: it returns 0, nil when no packet is waiting.
type Network interface {
	Send(pkt []byte) error
	Recv(pkt []byte) (int, error)
}

// MaxPacket is the largest packet a Network carries.
const MaxPacket = 128

// Pin indices of the GPIO bank every board exposes.
const (
	PinPTT = iota
	PinAI
)

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Console() Console
	Logger() Logger
	LED() LED
	GPIO() GPIO
	Serial() Serial
	Display() Display
	Input() Input
	Clock() Clock
	Network() Network
}
