// Package app wires the bus, the scheduler and the tasks into a runnable
// system.
package app

import (
	"fmt"
	"strconv"

	"neo/hal"
	"neo/neoui/bus"
	"neo/neoui/dispatch"
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
	"neo/neoui/stack"
	"neo/neoui/state"
	"neo/neoui/tasks/button"
	"neo/neoui/tasks/chat"
	"neo/neoui/tasks/crypto"
	"neo/neoui/tasks/fib"
	"neo/neoui/tasks/keyboard"
	"neo/neoui/tasks/link"
	"neo/neoui/tasks/metricsrpt"
	"neo/neoui/tasks/render"
	"neo/neoui/tasks/textedit"
)

// Config selects optional tasks and session parameters.
type Config struct {
	// Fib registers the synthetic load task.
	Fib  bool
	FibN uint32

	// ReportEveryUS overrides the metrics report period when non-zero.
	ReportEveryUS uint32

	CryptoKey [crypto.KeySize]byte
	// NodeID distinguishes this node on a shared link. Its first four
	// bytes salt the crypto nonces.
	NodeID string

	// Stack overrides the platform stack monitor.
	Stack stack.Monitor
	Order kernel.Order
}

// System is one running firmware instance.
type System struct {
	hal   hal.HAL
	bus   *bus.Bus[msg.Msg]
	rx    msg.Receiver
	mgr   *kernel.Mgr
	stack stack.Monitor

	afterStep []func(*System)
}

// New initialises the board state and registers every task. An error
// means the configuration does not fit the fixed tables; nothing has run.
func New(h hal.HAL, cfg Config) (*System, error) {
	installPanicHandler(h)

	if led := h.LED(); led != nil {
		led.Set(hal.Blue)
	}
	writeConsole(h, "Starting\r\n")

	b := bus.New[msg.Msg]()
	tx, rx, err := b.Channel()
	if err != nil {
		return nil, fmt.Errorf("app: bus: %w", err)
	}

	mon := cfg.Stack
	if mon == nil {
		mon = defaultStack()
	}

	data := &state.TaskData{}
	data.Fib.N = cfg.FibN
	var salt [4]byte
	copy(salt[:], cfg.NodeID)
	if err := crypto.Configure(&data.Crypto, cfg.CryptoKey[:], salt); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := button.Configure(h.GPIO()); err != nil {
		return nil, fmt.Errorf("app: buttons: %w", err)
	}

	mgr := kernel.New(kernel.Config{
		Sender:  tx,
		BSP:     h,
		Data:    data,
		Metrics: metrics.New(),
		Clock:   h.Clock(),
		Stack:   mon,
		Order:   cfg.Order,
	})

	report := metricsrpt.Task{}
	if cfg.ReportEveryUS != 0 {
		report = metricsrpt.Every(cfg.ReportEveryUS)
	}
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}

	tasks := []kernel.Task{
		chat.Task{},
		crypto.Task{},
		keyboard.Task{},
		report,
		link.Task{},
		render.New(render.NewScreen(fb)),
		textedit.Task{},
		button.Task{},
	}
	if cfg.Fib {
		tasks = append(tasks, fib.Task{})
	}
	for _, t := range tasks {
		if _, err := mgr.AddTask(t); err != nil {
			return nil, fmt.Errorf("app: add task %s: %w", t.Info().Name, err)
		}
	}

	if led := h.LED(); led != nil {
		led.Set(hal.Green)
	}

	s := &System{hal: h, bus: b, rx: rx, mgr: mgr, stack: mon}
	s.logStartingStack()
	return s, nil
}

// Step runs one scheduler tick and routes the events it produced.
func (s *System) Step() error {
	s.mgr.Run()
	dispatch.Process(s.rx, s.mgr.Data())
	for _, fn := range s.afterStep {
		fn(s)
	}
	return nil
}

// AfterStep registers fn to run at the end of every Step, on the
// scheduler's goroutine.
func (s *System) AfterStep(fn func(*System)) {
	s.afterStep = append(s.afterStep, fn)
}

// Mgr returns the scheduler.
func (s *System) Mgr() *kernel.Mgr { return s.mgr }

// Bus returns the message bus.
func (s *System) Bus() *bus.Bus[msg.Msg] { return s.bus }

// Run starts the firmware and never returns.
func Run(h hal.HAL, cfg Config) {
	s, err := New(h, cfg)
	if err != nil {
		panic(err)
	}
	for {
		_ = s.Step()
	}
}

func (s *System) logStartingStack() {
	usage, current, reserved := s.stack.Usage(false)
	writeStackLine(s.hal, "usage", usage)
	writeStackLine(s.hal, "current", current)
	writeStackLine(s.hal, "reserved", reserved)
}

func writeStackLine(h hal.HAL, what string, v uint32) {
	var buf [64]byte
	line := append(buf[:0], "  Starting stack "...)
	line = append(line, what...)
	line = append(line, ": "...)
	line = strconv.AppendUint(line, uint64(v), 10)
	line = append(line, " bytes\r\n"...)
	if c := h.Console(); c != nil {
		_, _ = c.Write(line)
	}
}

func writeConsole(h hal.HAL, s string) {
	if c := h.Console(); c != nil {
		_, _ = c.Write([]byte(s))
	}
}
