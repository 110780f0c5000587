// Package msg defines the events carried on the bus.
package msg

import "neo/neoui/bus"

// Kind identifies the event carried in a Msg.
type Kind uint8

const (
	// KindNone is the empty sentinel. It is never queued.
	KindNone Kind = iota
	KindPttButton
	KindAiButton
	KindKeyboard
	KindChatSend
	KindSeal
	KindLinkTx
	KindLinkRx
	KindChatRecv
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPttButton:
		return "ptt_button"
	case KindAiButton:
		return "ai_button"
	case KindKeyboard:
		return "keyboard"
	case KindChatSend:
		return "chat_send"
	case KindSeal:
		return "seal"
	case KindLinkTx:
		return "link_tx"
	case KindLinkRx:
		return "link_rx"
	case KindChatRecv:
		return "chat_recv"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrCode is the failure category of a KindError event.
type ErrCode uint8

const (
	ErrUnknown ErrCode = iota
	ErrOverflow
	ErrBadFrame
	ErrAuth
	ErrLink
	ErrTooLarge
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrOverflow:
		return "overflow"
	case ErrBadFrame:
		return "bad_frame"
	case ErrAuth:
		return "auth"
	case ErrLink:
		return "link"
	case ErrTooLarge:
		return "too_large"
	default:
		return "unknown"
	}
}

// MaxPayload is the largest text or frame a Msg carries inline.
const MaxPayload = 96

// MaxText is the longest chat line. A sealed line must still fit MaxPayload.
const MaxText = 64

// Msg is a fixed-size tagged event. Only the fields of its Kind are meaningful.
type Msg struct {
	Kind    Kind
	Pressed bool
	Key     rune
	Code    ErrCode
	Ref     Kind
	Len     uint8
	Data    [MaxPayload]byte
}

// None is the value returned when a channel is empty.
var None = Msg{}

// IsNone reports whether m is the empty sentinel.
func (m Msg) IsNone() bool { return m.Kind == KindNone }

// Payload returns the inline bytes, clamped to MaxPayload.
func (m *Msg) Payload() []byte {
	n := int(m.Len)
	if n > MaxPayload {
		n = MaxPayload
	}
	return m.Data[:n]
}

// PttButton reports a push-to-talk edge.
func PttButton(pressed bool) Msg { return Msg{Kind: KindPttButton, Pressed: pressed} }

// AiButton reports an assistant button edge.
func AiButton(pressed bool) Msg { return Msg{Kind: KindAiButton, Pressed: pressed} }

// Keyboard carries one key press.
func Keyboard(key rune) Msg { return Msg{Kind: KindKeyboard, Key: key} }

// Error reports a failure detected inside a task while handling ref.
func Error(code ErrCode, ref Kind) Msg { return Msg{Kind: KindError, Code: code, Ref: ref} }

// WithPayload returns a Msg of kind k carrying a copy of b.
// ok is false if b does not fit.
func WithPayload(k Kind, b []byte) (m Msg, ok bool) {
	if len(b) > MaxPayload {
		return Msg{}, false
	}
	m.Kind = k
	m.Len = uint8(len(b))
	copy(m.Data[:], b)
	return m, true
}

// Sender is the bus handle type tasks send events with.
type Sender = bus.Sender[Msg]

// Receiver is the bus handle type the dispatch loop drains.
type Receiver = bus.Receiver[Msg]

// Send queues m unless it is the empty sentinel.
func Send(tx Sender, m Msg) bool {
	if m.IsNone() {
		return false
	}
	return tx.Send(m)
}

// Recv pops the oldest event, or None when the channel is empty.
func Recv(rx Receiver) Msg {
	m, ok := rx.Recv()
	if !ok {
		return None
	}
	return m
}
