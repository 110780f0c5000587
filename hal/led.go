package hal

// Color is a status LED color. Each channel is either fully on or off.
type Color uint8

const (
	Black Color = iota
	White
	Red
	Green
	Blue
	Teal
	Yellow
	Purple
)

// RGB returns the channel levels for c.
func (c Color) RGB() (r, g, b bool) {
	switch c {
	case White:
		return true, true, true
	case Red:
		return true, false, false
	case Green:
		return false, true, false
	case Blue:
		return false, false, true
	case Teal:
		return false, true, true
	case Yellow:
		return true, true, false
	case Purple:
		return true, false, true
	default:
		return false, false, false
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Teal:
		return "teal"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	default:
		return "unknown"
	}
}

// pinLED drives an RGB LED through three output pins.
// Boards with common-anode LEDs set invert.
type pinLED struct {
	r, g, b GPIOPin
	invert  bool
	color   Color
}

func newPinLED(r, g, b GPIOPin, invert bool) *pinLED {
	l := &pinLED{r: r, g: g, b: b, invert: invert}
	for _, p := range []GPIOPin{r, g, b} {
		if p != nil {
			_ = p.Configure(GPIOModeOutput, GPIOPullNone)
		}
	}
	l.Set(Black)
	return l
}

func (l *pinLED) Set(c Color) {
	l.color = c
	r, g, b := c.RGB()
	l.write(l.r, r)
	l.write(l.g, g)
	l.write(l.b, b)
}

func (l *pinLED) Color() Color { return l.color }

func (l *pinLED) write(p GPIOPin, on bool) {
	if p == nil {
		return
	}
	_ = p.Write(on != l.invert)
}
