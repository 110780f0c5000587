package hal

import (
	"errors"
	"testing"
	"time"
)

func TestSignalPinRead(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	pin := newSignalPinWithClock("PTT", 10*time.Second, 2*time.Second, clock)
	if pin == nil {
		t.Fatal("expected pin")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if level {
		t.Fatal("expected low (pressed) at t=0")
	}

	now = now.Add(3 * time.Second)
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected high (released) at t=3s")
	}

	now = now.Add(8 * time.Second) // t=11s => phase 1s, pressed again
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if level {
		t.Fatal("expected low at t=11s")
	}
}

func TestSignalPinRejectsOutput(t *testing.T) {
	pin := newSignalPinWithClock("PTT", time.Second, 0, nil)
	if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("Configure(output) err = nil")
	}
	if err := pin.Write(true); err == nil {
		t.Fatal("Write() err = nil")
	}
}

func TestButtonPinPress(t *testing.T) {
	p := newButtonPin("AI")
	if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if level, _ := p.Read(); !level {
		t.Fatal("released button reads low")
	}
	p.press(true)
	if level, _ := p.Read(); level {
		t.Fatal("pressed button reads high")
	}
	p.press(false)
	if level, _ := p.Read(); !level {
		t.Fatal("button did not release")
	}
}

func TestVirtualGPIOBounds(t *testing.T) {
	g := newVirtualGPIO([]GPIOPin{newButtonPin("PTT")})
	if g.PinCount() != 1 {
		t.Fatalf("PinCount() = %d", g.PinCount())
	}
	if g.Pin(-1) != nil || g.Pin(1) != nil {
		t.Fatal("out of range Pin() returned a pin")
	}
	if _, ok := newVirtualGPIO(nil).(nullGPIO); !ok {
		t.Fatal("empty bank is not nullGPIO")
	}
}

func TestCheckPinConfig(t *testing.T) {
	caps := GPIOCapInput | GPIOCapPullUp
	if err := CheckPinConfig("PTT", caps, GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("input pull-up: %v", err)
	}
	if err := CheckPinConfig("PTT", caps, GPIOModeInput, GPIOPullDown); !errors.Is(err, ErrPinUnsupported) {
		t.Fatalf("pull-down err = %v, want ErrPinUnsupported", err)
	}
	if err := CheckPinConfig("PTT", caps, GPIOMode(9), GPIOPullNone); err == nil || errors.Is(err, ErrPinUnsupported) {
		t.Fatalf("invalid mode err = %v", err)
	}
}
