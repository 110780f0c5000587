// Package dispatch routes bus events into task state once per tick.
package dispatch

import (
	"neo/neoui/bus"
	"neo/neoui/msg"
	"neo/neoui/state"
)

// Transcript prefixes.
const (
	SentPrefix     = "> "
	ReceivedPrefix = "< "
)

// Process drains rx into data and returns the number of events routed.
//
// At most bus.QueueSlots events are popped, counted from the queue depth
// at entry, so events queued while routing wait for the next tick.
func Process(rx msg.Receiver, data *state.TaskData) int {
	n := rx.Len()
	if n > bus.QueueSlots {
		n = bus.QueueSlots
	}
	routed := 0
	for i := 0; i < n; i++ {
		m := msg.Recv(rx)
		if m.IsNone() {
			break
		}
		if Route(&m, data) {
			routed++
		}
	}
	return routed
}

// Route applies one event. It reports false for kinds nobody consumes.
func Route(m *msg.Msg, data *state.TaskData) bool {
	switch m.Kind {
	case msg.KindKeyboard:
		data.TextEdit.Apply(m.Key)
		data.Render.SetEdit(data.TextEdit.Text())
	case msg.KindPttButton:
		data.Chat.PTT = m.Pressed
		data.Link.Transmitting = m.Pressed
		data.Render.SetPTT(m.Pressed)
	case msg.KindAiButton:
		data.Chat.AI = m.Pressed
	case msg.KindChatSend:
		data.Chat.QueueOutgoing(m.Payload())
		data.Render.AddLine(SentPrefix, m.Payload())
	case msg.KindSeal:
		data.Crypto.QueueSeal(m.Payload())
	case msg.KindLinkTx:
		data.Link.QueueTx(m.Payload())
	case msg.KindLinkRx:
		data.Crypto.QueueOpen(m.Payload())
	case msg.KindChatRecv:
		data.Chat.AddHistory(m.Payload())
		data.Render.AddLine(ReceivedPrefix, m.Payload())
	case msg.KindError:
		data.Render.RecordError(m.Code, m.Ref)
	default:
		return false
	}
	return true
}
