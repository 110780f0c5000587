// Package button polls the front panel buttons.
package button

import (
	"neo/hal"
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Button"),
	RunEveryUS:     10_000,
	TimeBudgetUS:   100,
	MemBudgetBytes: 200,
}

// Task samples the PTT and AI pins and reports debounced edges.
// The pins are pulled up: a low level means pressed.
type Task struct{}

func (Task) Info() *kernel.Info { return &Info }

func (Task) Run(ctx *kernel.Context) {
	gpio := ctx.BSP.GPIO()
	if gpio == nil {
		return
	}
	data := &ctx.Data.Button
	if pressed, ok := sample(gpio, hal.PinPTT, &data.ReadErrors); ok && data.PTT.Sample(pressed) {
		ctx.Send(msg.PttButton(data.PTT.Stable))
	}
	if pressed, ok := sample(gpio, hal.PinAI, &data.ReadErrors); ok && data.AI.Sample(pressed) {
		ctx.Send(msg.AiButton(data.AI.Stable))
	}
}

func sample(gpio hal.GPIO, id int, errs *uint32) (pressed, ok bool) {
	if id >= gpio.PinCount() {
		return false, false
	}
	pin := gpio.Pin(id)
	if pin == nil {
		return false, false
	}
	level, err := pin.Read()
	if err != nil {
		*errs++
		return false, false
	}
	return !level, true
}

// Configure sets the button pins to pulled-up inputs.
func Configure(gpio hal.GPIO) error {
	if gpio == nil {
		return nil
	}
	for _, id := range [...]int{hal.PinPTT, hal.PinAI} {
		if id >= gpio.PinCount() {
			continue
		}
		pin := gpio.Pin(id)
		if pin == nil {
			continue
		}
		if err := pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return err
		}
	}
	return nil
}
