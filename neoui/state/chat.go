package state

// HistoryLines is the number of received lines chat remembers.
const HistoryLines = 8

// Chat is the conversation state.
type Chat struct {
	PTT bool
	AI  bool

	Outgoing   LineQueue
	Overflowed bool

	history [HistoryLines]Line
	next    uint8
	count   uint8
}

// QueueOutgoing queues a line typed by the user for sealing.
func (c *Chat) QueueOutgoing(text []byte) {
	if !c.Outgoing.Push(text) {
		c.Overflowed = true
	}
}

// AddHistory records a received line, evicting the oldest when full.
func (c *Chat) AddHistory(text []byte) {
	c.history[c.next].Set(text)
	c.next = (c.next + 1) % HistoryLines
	if c.count < HistoryLines {
		c.count++
	}
}

// HistoryLen returns the number of remembered lines.
func (c *Chat) HistoryLen() int { return int(c.count) }

// History returns the i'th remembered line, oldest first.
func (c *Chat) History(i int) *Line {
	if i < 0 || i >= int(c.count) {
		return nil
	}
	start := (int(c.next) + HistoryLines - int(c.count)) % HistoryLines
	return &c.history[(start+i)%HistoryLines]
}
