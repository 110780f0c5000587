package keyboard

import (
	"testing"

	"neo/hal"
	"neo/neoui/kernel/kerneltest"
	"neo/neoui/msg"
	"neo/neoui/state"
)

func keys(ms []msg.Msg) string {
	var out []rune
	for _, m := range ms {
		if m.Kind == msg.KindKeyboard {
			out = append(out, m.Key)
		}
	}
	return string(out)
}

func TestKeyboardEvents(t *testing.T) {
	h := kerneltest.New(t, Task{})
	h.HAL.Keys <- hal.KeyEvent{Press: true, Rune: 'h'}
	h.HAL.Keys <- hal.KeyEvent{Press: false, Rune: 'h'}
	h.HAL.Keys <- hal.KeyEvent{Press: true, Rune: 'i'}
	h.HAL.Keys <- hal.KeyEvent{Press: true, Code: hal.KeyEnter}

	h.Tick(uint64(Info.RunEveryUS))
	if got := keys(h.Drain()); got != "hi\r" {
		t.Fatalf("keys = %q, want %q", got, "hi\r")
	}
	if h.Data().Keyboard.Keys != 3 {
		t.Fatalf("Keys = %d, want 3", h.Data().Keyboard.Keys)
	}
}

func TestKeyboardSerialUTF8(t *testing.T) {
	h := kerneltest.New(t, Task{})
	h.HAL.SerialIn.WriteString("aż\n")

	h.Tick(uint64(Info.RunEveryUS))
	if got := keys(h.Drain()); got != "aż\n" {
		t.Fatalf("keys = %q", got)
	}
}

func TestKeyboardSerialTruncatedLeadByte(t *testing.T) {
	h := kerneltest.New(t, Task{})
	h.HAL.SerialIn.Write([]byte{0xC5, 'A', 'B'})

	h.Tick(uint64(Info.RunEveryUS))
	if got := keys(h.Drain()); got != "AB" {
		t.Fatalf("keys = %q, want %q", got, "AB")
	}
	if h.Data().Keyboard.PendingLen != 0 {
		t.Fatalf("PendingLen = %d, want 0", h.Data().Keyboard.PendingLen)
	}
}

func TestKeyboardBoundedPerRun(t *testing.T) {
	h := kerneltest.New(t, Task{})
	h.HAL.SerialIn.WriteString("0123456789")

	h.Tick(uint64(Info.RunEveryUS))
	if got := keys(h.Drain()); got != "01234567" {
		t.Fatalf("first run keys = %q", got)
	}
	h.Tick(uint64(Info.RunEveryUS))
	if got := keys(h.Drain()); got != "89" {
		t.Fatalf("second run keys = %q", got)
	}
}

func TestRune(t *testing.T) {
	for _, tc := range []struct {
		ev   hal.KeyEvent
		want rune
		ok   bool
	}{
		{hal.KeyEvent{Press: true, Code: hal.KeyBackspace}, state.KeyBackspace, true},
		{hal.KeyEvent{Press: true, Code: hal.KeyDelete}, state.KeyDelete, true},
		{hal.KeyEvent{Press: true, Code: hal.KeyUp}, 0, false},
		{hal.KeyEvent{Press: false, Code: hal.KeyEnter}, 0, false},
		{hal.KeyEvent{Press: true, Rune: 'ж'}, 'ж', true},
	} {
		got, ok := Rune(tc.ev)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Rune(%+v) = %q,%v, want %q,%v", tc.ev, got, ok, tc.want, tc.ok)
		}
	}
}
