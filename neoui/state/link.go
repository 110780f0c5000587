package state

// Link is the radio link state.
type Link struct {
	Transmitting bool

	Tx         LineQueue
	Overflowed bool

	Sent     uint32
	Received uint32
	Errors   uint32
}

// QueueTx queues a sealed frame for transmission.
func (l *Link) QueueTx(frame []byte) {
	if !l.Tx.Push(frame) {
		l.Overflowed = true
	}
}
