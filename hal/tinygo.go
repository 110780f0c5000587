//go:build tinygo && baremetal

package hal

import "machine"

// Board wiring for the Pico carrier: console on UART0 (GP0 TX / GP1 RX,
// 115200 8N1), common-anode RGB status LED, active-low PTT and AI buttons.
var (
	pinLEDRed   = machine.GP6
	pinLEDGreen = machine.GP7
	pinLEDBlue  = machine.GP8
	pinPTT      = machine.GP14
	pinAI       = machine.GP15
)

const ledCommonAnode = true

type tinyGoHAL struct {
	console *uartConsole
	logger  *uartLogger
	led     *pinLED
	gpio    GPIO
	fb      Framebuffer
	kbd     Keyboard
	clock   *tinyGoClock
	net     Network
	serial  *uartSerial
}

// New returns the bare-metal HAL.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	led := newPinLED(
		&machinePin{name: "LED_R", pin: pinLEDRed},
		&machinePin{name: "LED_G", pin: pinLEDGreen},
		&machinePin{name: "LED_B", pin: pinLEDBlue},
		ledCommonAnode,
	)
	return &tinyGoHAL{
		console: &uartConsole{uart: uart},
		logger:  &uartLogger{uart: uart},
		led:     led,
		gpio: newVirtualGPIO([]GPIOPin{
			PinPTT: &machinePin{name: "PTT", pin: pinPTT},
			PinAI:  &machinePin{name: "AI", pin: pinAI},
		}),
		clock:  newTinyGoClock(),
		net:    nullNetwork{},
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Console() Console { return h.console }
func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Serial() Serial   { return h.serial }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Network() Network { return h.net }
