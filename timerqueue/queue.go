package timerqueue

import (
	"golang.org/x/exp/constraints"
)

// Queue is a scheduling queue for timed operations.
// It is generic over the deadline type T, whose ordering is defined entirely by the comparator passed to New,
// and the cancellation token type K, which groups timers for cancellation (multiple timers may share one token).
type Queue[T any, K comparable] struct {
	less  func(a, b T) bool
	heap  []*entry[T, K]
	index map[K]*entry[T, K]
}

// New returns an empty queue ordered by the given comparator.
// The comparator must define a strict weak order over deadlines: less(a, b) reports whether a timer with deadline a fires before one with deadline b.
// For plain ordered types, Ascending can be used; time.Time deadlines can use the time.Time.Before method expression.
func New[T any, K comparable](less func(a, b T) bool) *Queue[T, K] {
	if less == nil {
		// Indicates a development-time error
		panic("timerqueue: comparator is required")
	}
	return &Queue[T, K]{
		less:  less,
		index: make(map[K]*entry[T, K]),
	}
}

// Enqueue adds a new timer to the queue.
// It returns true if this timer is now the earliest in the queue, in which case the owning event loop
// may need to interrupt its blocking wait and re-arm it with the new deadline.
func (q *Queue[T, K]) Enqueue(deadline T, token K, h Handler) bool {
	if h == nil {
		// Indicates a development-time error
		panic("timerqueue: handler is required")
	}
	e := &entry[T, K]{
		deadline: deadline,
		token:    token,
		handler:  h,
	}
	q.link(e)
	q.heapPush(e)
	return q.heap[0] == e
}

// Len returns the number of pending timers.
func (q *Queue[T, K]) Len() int {
	return len(q.heap)
}

// IsEmpty reports whether the queue has no pending timers.
func (q *Queue[T, K]) IsEmpty() bool {
	return len(q.heap) == 0
}

// EarliestDeadline returns the deadline of the earliest pending timer.
// Calling it on an empty queue is a programming error and panics; use IsEmpty (or the return value of Enqueue) to guard.
func (q *Queue[T, K]) EarliestDeadline() T {
	if len(q.heap) == 0 {
		panic("timerqueue: EarliestDeadline called on an empty queue")
	}
	return q.heap[0].deadline
}

// DispatchDue fires every timer whose deadline compares strictly before now, in non-decreasing deadline order.
// Each timer is fully removed from the queue before its Fire method runs, so a misbehaving handler
// cannot corrupt the queue or cause a double fire; panics from handlers propagate to the caller.
func (q *Queue[T, K]) DispatchDue(now T) {
	for len(q.heap) > 0 && q.less(q.heap[0].deadline, now) {
		e := q.heap[0]
		q.remove(e)
		e.handler.Fire()
	}
}

// Cancel removes every pending timer registered under the given token and invokes its Cancel method,
// most recently enqueued first. Cancelling a token with no pending timers is a no-op:
// cancellations racing with firings are expected and benign.
func (q *Queue[T, K]) Cancel(token K) {
	e := q.index[token]
	for e != nil {
		// The entry is unlinked before its handler runs, so grab the successor first
		next := e.next
		q.remove(e)
		e.handler.Cancel()
		e = next
	}
}

// remove detaches an entry from both the heap and the token index.
// After remove returns the entry is no longer reachable from the queue and its terminal callback can run.
func (q *Queue[T, K]) remove(e *entry[T, K]) {
	q.heapRemove(e)
	q.unlink(e)
}

// Ascending is a comparator for any ordered deadline type, earliest value first.
func Ascending[T constraints.Ordered](a, b T) bool {
	return a < b
}
