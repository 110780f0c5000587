//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// poll forwards window input. F1 and F2 hold the PTT and AI buttons.
func (k *hostKeyboard) poll(ptt, ai *virtualPin) {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	keys := []struct {
		key  ebiten.Key
		code KeyCode
		r    rune
	}{
		{ebiten.KeyEnter, KeyEnter, '\r'},
		{ebiten.KeyBackspace, KeyBackspace, 0x08},
		{ebiten.KeyEscape, KeyEscape, 0},
		{ebiten.KeyTab, KeyTab, '\t'},
		{ebiten.KeyDelete, KeyDelete, 0},
		{ebiten.KeyArrowUp, KeyUp, 0},
		{ebiten.KeyArrowDown, KeyDown, 0},
		{ebiten.KeyArrowLeft, KeyLeft, 0},
		{ebiten.KeyArrowRight, KeyRight, 0},
	}
	for _, kc := range keys {
		if inpututil.IsKeyJustPressed(kc.key) {
			k.emit(KeyEvent{Code: kc.code, Press: true, Rune: kc.r})
		}
		if inpututil.IsKeyJustReleased(kc.key) {
			k.emit(KeyEvent{Code: kc.code, Press: false})
		}
	}

	if ptt != nil {
		ptt.press(ebiten.IsKeyPressed(ebiten.KeyF1))
	}
	if ai != nil {
		ai.press(ebiten.IsKeyPressed(ebiten.KeyF2))
	}
}
