package state

import "neo/neoui/queue"

// LineQueue is a bounded FIFO of lines.
type LineQueue struct {
	ring queue.Ring[Line]
	buf  [QueueDepth]Line
}

// QueueDepth is the capacity of every queue inside TaskData.
const QueueDepth = 4

func (q *LineQueue) init() {
	if q.ring.Cap() == 0 {
		q.ring.Init(q.buf[:])
	}
}

// Push queues a copy of b. It returns false and keeps the queue
// unchanged when it is full.
func (q *LineQueue) Push(b []byte) bool {
	q.init()
	return q.ring.Push(MakeLine(b))
}

// Pop removes the oldest line.
func (q *LineQueue) Pop() (Line, bool) {
	q.init()
	return q.ring.Pop()
}

// Len returns the number of queued lines.
func (q *LineQueue) Len() int { return q.ring.Len() }
