package button

import (
	"testing"

	"neo/hal"
	"neo/neoui/kernel/kerneltest"
	"neo/neoui/msg"
)

func TestButtonEdgesAfterDebounce(t *testing.T) {
	h := kerneltest.New(t, Task{})
	every := uint64(Info.RunEveryUS)

	h.HAL.Press(hal.PinPTT, true)
	h.Tick(every)
	if got := h.Drain(); len(got) != 0 {
		t.Fatalf("events after one sample: %v", got)
	}
	h.Tick(every)
	got := h.Drain()
	if len(got) != 1 || got[0].Kind != msg.KindPttButton || !got[0].Pressed {
		t.Fatalf("events = %+v, want one PTT press", got)
	}
	h.Tick(every)
	if got := h.Drain(); len(got) != 0 {
		t.Fatalf("events while held: %d", len(got))
	}

	h.HAL.Press(hal.PinPTT, false)
	h.HAL.Press(hal.PinAI, true)
	h.Tick(every)
	h.Tick(every)
	got = h.Drain()
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Kind != msg.KindPttButton || got[0].Pressed {
		t.Fatalf("first event = %v/%v, want PTT release", got[0].Kind, got[0].Pressed)
	}
	if got[1].Kind != msg.KindAiButton || !got[1].Pressed {
		t.Fatalf("second event = %v/%v, want AI press", got[1].Kind, got[1].Pressed)
	}
}

func TestButtonReadErrorsCounted(t *testing.T) {
	h := kerneltest.New(t, Task{})
	h.HAL.Pins[hal.PinAI].Fail = true
	h.Tick(uint64(Info.RunEveryUS))
	if h.Data().Button.ReadErrors != 1 {
		t.Fatalf("ReadErrors = %d, want 1", h.Data().Button.ReadErrors)
	}
}

func TestConfigurePullsUp(t *testing.T) {
	h := kerneltest.New(t)
	if err := Configure(h.HAL.GPIO()); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	for i, p := range h.HAL.Pins {
		if p.Mode != hal.GPIOModeInput || p.Pull != hal.GPIOPullUp {
			t.Fatalf("pin %d mode/pull = %v/%v", i, p.Mode, p.Pull)
		}
	}
}
