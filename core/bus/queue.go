package bus

import "sync"

// compactThreshold is the number of consumed slots after which pop
// reclaims the front of the backing slice.
const compactThreshold = 64

// queue is an unbounded FIFO of envelopes, safe for concurrent producers
// and consumers. It has its own lock so queue traffic never contends on the
// registry mutex.
type queue struct {
	mu    sync.Mutex
	items []Envelope
	head  int
}

func (q *queue) push(env Envelope) {
	q.mu.Lock()
	q.items = append(q.items, env)
	q.mu.Unlock()
}

// pop removes and returns the oldest envelope.
func (q *queue) pop() (Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return Envelope{}, false
	}

	env := q.items[q.head]
	q.items[q.head] = Envelope{}
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return env, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
