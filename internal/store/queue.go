package store

import (
	"sync"

	"github.com/streylix/docstore/internal/document"
)

// writeRequest is one pending write: the repaired document to persist and
// the channel its caller is blocked on. Each request is consumed exactly
// once by the drain loop.
type writeRequest struct {
	doc    document.Document
	result chan error // buffered, capacity 1
}

// writeQueue is a thread-safe FIFO queue of write requests.
//
// The queue is unbounded: the store accepts user-settings-scale write
// volume, so callers outrunning disk I/O accumulate in memory rather than
// block each other.
//
// Thread-safety covers external enqueuing from any goroutine while the
// store's drain loop dequeues. The signal channel (buffered, size 1)
// coalesces wakeups so the drain loop can wait without spinning.
type writeQueue struct {
	mu       sync.Mutex
	requests []*writeRequest
	closed   bool
	signal   chan struct{}
}

// newWriteQueue creates an empty write queue.
func newWriteQueue() *writeQueue {
	return &writeQueue{
		requests: make([]*writeRequest, 0, 8),
		signal:   make(chan struct{}, 1),
	}
}

// Enqueue adds a request to the back of the queue.
// Returns false if the queue is closed.
func (q *writeQueue) Enqueue(req *writeRequest) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.requests = append(q.requests, req)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Dequeue removes and returns the front request, blocking until one is
// available. Returns (nil, false) once the queue is closed and fully
// drained.
func (q *writeQueue) Dequeue() (*writeRequest, bool) {
	for {
		if req, ok := q.tryDequeue(); ok {
			return req, true
		}

		q.mu.Lock()
		if q.closed && len(q.requests) == 0 {
			q.mu.Unlock()
			return nil, false
		}
		q.mu.Unlock()

		<-q.signal
	}
}

// tryDequeue attempts to dequeue without blocking.
func (q *writeQueue) tryDequeue() (*writeRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.requests) == 0 {
		return nil, false
	}
	req := q.requests[0]

	// Nil out the slot so the dequeued request's document can be collected
	// while the backing array lives on.
	q.requests[0] = nil
	if len(q.requests) == 1 {
		q.requests = q.requests[:0]
	} else {
		q.requests = q.requests[1:]
	}
	return req, true
}

// Len returns the current queue length.
func (q *writeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.requests)
}

// Close marks the queue closed and wakes all waiters. Requests already
// enqueued remain dequeuable; new Enqueue calls fail.
func (q *writeQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
