// Package timerqueue implements a timer scheduling queue for reactor-style event loops.
// Pending timers are kept in a binary min-heap ordered by deadline, cross-linked with an index keyed by cancellation token,
// so the owning loop can query the earliest deadline in O(1), fire due timers in deadline order, and cancel timers by token before they fire.
// The queue is single-threaded and performs no I/O: callers that share one queue across goroutines must serialize access themselves
// (the eventqueue package does exactly that).
package timerqueue
