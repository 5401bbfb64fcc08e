package timerqueue

// The token index maps each token with at least one pending timer to the head
// of an intrusive doubly-linked chain of all timers sharing that token.
// New timers are linked at the head, so chains are in reverse insertion order.
// A token whose chain becomes empty is removed from the index immediately.

// link inserts the entry at the head of its token's chain.
func (q *Queue[T, K]) link(e *entry[T, K]) {
	if head, ok := q.index[e.token]; ok {
		head.prev = e
		e.next = head
	}
	q.index[e.token] = e
}

// unlink detaches the entry from its token's chain and clears its links.
func (q *Queue[T, K]) unlink(e *entry[T, K]) {
	if q.index[e.token] == e {
		if e.next == nil {
			delete(q.index, e.token)
		} else {
			q.index[e.token] = e.next
		}
	}
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev = nil
	e.next = nil
}
