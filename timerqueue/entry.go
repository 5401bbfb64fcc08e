package timerqueue

// entry is a single pending timer, owned exclusively by the queue.
// It lives in exactly one heap slot and exactly one token chain until it is removed,
// at which point its links are cleared and the queue holds no further reference to it.
type entry[T any, K comparable] struct {
	// The deadline at which the timer should fire
	deadline T

	// The cancellation token the timer was registered under
	token K

	// The handler invoked on fire or cancel
	handler Handler

	// Current position in the heap array, or -1 when not in the heap
	slot int

	// Neighbors in the doubly-linked chain of timers sharing the same token
	prev, next *entry[T, K]
}
