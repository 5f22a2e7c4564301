// Package events carries samples from the acquisition goroutine to the
// single consumer. The producer cadence is sensor-limited and low-rate, so
// the backlog is bounded only by memory; dropping samples is not acceptable
// here, and Push must never block on consumer speed (a stalled push would
// desynchronize the serial read loop from the device framing).
package events

import (
	"sync"

	"accelviz/internal/sample"
)

// Queue is a FIFO handoff for samples. Single producer, single consumer.
type Queue struct {
	mu     sync.Mutex
	buf    []sample.Sample
	wake   chan struct{}
	closed bool
}

func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Push appends s to the backlog and wakes the consumer. Never blocks.
// Pushes after Close are discarded.
func (q *Queue) Push(s sample.Sample) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.buf = append(q.buf, s)
	q.mu.Unlock()
	q.signal()
}

// Wake becomes readable whenever the backlog may be non-empty, or after
// Close. Pair each receive with a Drain.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Drain removes and returns all pending samples in production order.
// Returns nil when the backlog is empty.
func (q *Queue) Drain() []sample.Sample {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.buf
	q.buf = nil
	return out
}

// Close stops accepting pushes and wakes the consumer one last time.
// Samples already queued are still returned by Drain.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
