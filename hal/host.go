//go:build !tinygo

package hal

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HostConfig selects the simulator backends.
type HostConfig struct {
	// Log receives diagnostic lines. The zero value discards them.
	Log zerolog.Logger
	// Network is the radio link. Nil means no link.
	Network Network
	// PTTPeriod, when non-zero, replaces the PTT button with a scripted
	// pin held down for PTTHold of every period.
	PTTPeriod time.Duration
	PTTHold   time.Duration
}

type hostHAL struct {
	console *hostConsole
	logger  *hostLogger
	led     *hostLED
	gpio    GPIO
	ptt     *virtualPin
	ai      *virtualPin
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	clock   *hostClock
	net     Network
	serial  *hostSerial
}

// New returns a host HAL with default backends.
func New() HAL {
	return NewWithConfig(HostConfig{Log: zerolog.Nop()})
}

// NewWithConfig returns a host HAL implementation.
func NewWithConfig(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	logger := &hostLogger{log: cfg.Log}
	h := &hostHAL{
		console: &hostConsole{w: os.Stdout},
		logger:  logger,
		led:     &hostLED{log: cfg.Log},
		ptt:     newButtonPin("PTT"),
		ai:      newButtonPin("AI"),
		fb:      newHostFramebuffer(320, 240),
		kbd:     newHostKeyboard(),
		clock:   newHostClock(),
		net:     cfg.Network,
		serial:  newHostSerial(os.Stdin, os.Stdout),
	}
	if h.net == nil {
		h.net = nullNetwork{}
	}
	var ptt GPIOPin = h.ptt
	if cfg.PTTPeriod > 0 {
		ptt = newSignalPin("PTT", cfg.PTTPeriod, cfg.PTTHold)
	}
	h.gpio = newVirtualGPIO([]GPIOPin{PinPTT: ptt, PinAI: h.ai})
	return h
}

func (h *hostHAL) Console() Console { return h.console }
func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Serial() Serial   { return h.serial }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Network() Network { return h.net }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostConsole struct {
	mu sync.Mutex
	w  *os.File
}

func (c *hostConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

type hostLogger struct {
	log zerolog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.log.Info().Msg(string(b))
}

type hostLED struct {
	mu    sync.Mutex
	color Color
	log   zerolog.Logger
}

func (l *hostLED) Set(c Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color == c {
		return
	}
	l.color = c
	l.log.Debug().Str("color", c.String()).Msg("led")
}

func (l *hostLED) Color() Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) NowUS() uint64 {
	return uint64(time.Since(c.start) / time.Microsecond)
}
