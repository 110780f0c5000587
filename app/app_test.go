package app

import (
	"strings"
	"testing"

	"neo/hal"
	"neo/hal/haltest"
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/stack"
	"neo/neoui/tasks/crypto"
)

func newSystem(t *testing.T, cfg Config) (*System, *haltest.HAL) {
	t.Helper()
	h := haltest.New()
	h.FB = haltest.NewFramebuffer(160, 120)
	if cfg.Stack == nil {
		cfg.Stack = &stack.Stub{Current: 100, Reserved: 4096}
	}
	if cfg.NodeID == "" {
		cfg.NodeID = "node-a"
	}
	s, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, h
}

func steps(t *testing.T, s *System, h *haltest.HAL, n int, us uint64) {
	t.Helper()
	for i := 0; i < n; i++ {
		h.Advance(us)
		if err := s.Step(); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
}

func TestNewStartupOutput(t *testing.T) {
	s, h := newSystem(t, Config{})

	want := "Starting\r\n" +
		"  Starting stack usage: 100 bytes\r\n" +
		"  Starting stack current: 100 bytes\r\n" +
		"  Starting stack reserved: 4096 bytes\r\n"
	if got := h.ConsoleBuf.String(); got != want {
		t.Fatalf("console = %q, want %q", got, want)
	}
	if h.LEDColor != hal.Green {
		t.Fatalf("LED = %v, want green", h.LEDColor)
	}
	if s.Mgr().Slots() != 8 {
		t.Fatalf("Slots() = %d, want 8", s.Mgr().Slots())
	}
	names := []string{"Chat____", "Crypto__", "Keyboard", "Metrics_", "NetLink_", "Render__", "TextEdit", "Button__"}
	for i, name := range names {
		if got := s.Mgr().Info(kernel.SlotID(i)).Name.String(); got != name {
			t.Fatalf("slot %d = %q, want %q", i, got, name)
		}
	}
	for _, p := range h.Pins {
		if p.Pull != hal.GPIOPullUp {
			t.Fatal("button pins not pulled up")
		}
	}
	if s.Bus().Allocated() != 1 {
		t.Fatalf("channels allocated = %d, want 1", s.Bus().Allocated())
	}
}

func TestFibOptional(t *testing.T) {
	s, _ := newSystem(t, Config{Fib: true, FibN: 10})
	if s.Mgr().Slots() != 9 {
		t.Fatalf("Slots() = %d, want 9", s.Mgr().Slots())
	}
	if s.Mgr().Info(8).Name != metrics.MakeName("Fib") {
		t.Fatalf("slot 8 = %q", s.Mgr().Info(8).Name)
	}
}

func TestTypedLineGoesOutAndComesBack(t *testing.T) {
	s, h := newSystem(t, Config{})
	for _, r := range "hi" {
		h.Keys <- hal.KeyEvent{Press: true, Rune: r}
	}
	h.Keys <- hal.KeyEvent{Press: true, Code: hal.KeyEnter}

	steps(t, s, h, 100, 10_000)
	if len(h.Net.Sent) != 1 {
		t.Fatalf("frames sent = %d, want 1", len(h.Net.Sent))
	}
	frame := h.Net.Sent[0]
	if len(frame) != len("hi")+crypto.Overhead {
		t.Fatalf("frame length = %d, want sealed line", len(frame))
	}
	data := s.Mgr().Data()
	if data.Chat.HistoryLen() != 0 {
		t.Fatal("chat history before anything was received")
	}

	h.Net.Inbox = append(h.Net.Inbox, frame)
	steps(t, s, h, 50, 10_000)
	if data.Chat.HistoryLen() != 1 || data.Chat.History(0).String() != "hi" {
		t.Fatalf("history = %d lines", data.Chat.HistoryLen())
	}
	if data.Crypto.Sealed != 1 || data.Crypto.Opened != 1 {
		t.Fatalf("crypto sealed=%d opened=%d", data.Crypto.Sealed, data.Crypto.Opened)
	}
	if h.FB.Presents == 0 {
		t.Fatal("screen never presented")
	}
}

func TestButtonDrivesPTT(t *testing.T) {
	s, h := newSystem(t, Config{})
	h.Press(hal.PinPTT, true)
	steps(t, s, h, 10, 10_000)

	data := s.Mgr().Data()
	if !data.Chat.PTT || !data.Link.Transmitting || !data.Render.PTT {
		t.Fatal("PTT press not routed")
	}
	if h.LEDColor != hal.Blue {
		t.Fatalf("LED = %v, want blue while PTT is held", h.LEDColor)
	}
}

func TestReportPeriodOverride(t *testing.T) {
	s, h := newSystem(t, Config{ReportEveryUS: 100_000})
	h.ConsoleBuf.Reset()
	steps(t, s, h, 10, 10_000)
	if !strings.Contains(h.ConsoleBuf.String(), "Task Keyboard: 0010 runs, 00100 bytes, 0000000 uS\r\n") {
		t.Fatalf("console = %q", h.ConsoleBuf.String())
	}
}

func TestAfterStep(t *testing.T) {
	s, h := newSystem(t, Config{})
	calls := 0
	s.AfterStep(func(got *System) {
		if got != s {
			t.Fatal("AfterStep got another system")
		}
		calls++
	})
	steps(t, s, h, 3, 1)
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestPanicScreen(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{
		Slot:  2,
		Name:  metrics.MakeName("Crypto"),
		Value: "boom",
		Stack: []byte("main.go:1\n\nmain.go:2\n"),
	})
	want := []string{"Neo panic:", "task: Crypto__ (slot 2)", "panic: boom", "stack:", "main.go:1", "main.go:2"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q", lines)
	}

	fb := haltest.NewFramebuffer(64, 32)
	h := haltest.New()
	h.FB = fb
	drawPanicOn(h, lines)
	if fb.Presents != 1 || fb.Lit() == 0 {
		t.Fatalf("presents=%d lit=%d", fb.Presents, fb.Lit())
	}
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("жжabc", 3)
	if p != "жжa" || r != "bc" {
		t.Fatalf("takeRunes = %q,%q", p, r)
	}
	p, r = takeRunes("ab", 5)
	if p != "ab" || r != "" {
		t.Fatalf("takeRunes = %q,%q", p, r)
	}
}
