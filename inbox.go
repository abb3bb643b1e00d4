package strata

import "sync"

// inbox is the machine's incoming-message queue. Producers on any goroutine
// append under the lock; the consumer snapshots the whole backlog at the
// start of a tick. FIFO order is preserved across the snapshot.
type inbox struct {
	mu   sync.Mutex
	msgs []Message
}

// push appends a message. Safe for concurrent use.
func (q *inbox) push(msg Message) {
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	q.mu.Unlock()
}

// drainInto moves every queued message onto dst and returns the extended
// slice. Messages pushed after the snapshot wait for the next drain.
func (q *inbox) drainInto(dst []Message) []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return dst
	}
	dst = append(dst, q.msgs...)
	clear(q.msgs)
	q.msgs = q.msgs[:0]
	return dst
}

// size reports the number of messages waiting in the queue.
func (q *inbox) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}
