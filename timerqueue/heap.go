package timerqueue

// The heap is a 0-based array binary min-heap over entry deadlines.
// Every entry caches its current slot, and heapSwap re-homes the cache on each swap;
// this is what makes removal from the middle of the heap O(log n) instead of a linear scan.
// All ordering decisions go through the queue's comparator, including the
// smaller-child pick during sift-down.

// heapPush appends the entry and sifts it up to its position.
func (q *Queue[T, K]) heapPush(e *entry[T, K]) {
	e.slot = len(q.heap)
	q.heap = append(q.heap, e)
	q.siftUp(e.slot)
}

// heapRemove removes the entry from an arbitrary slot.
// The last element is swapped into the vacated slot and then sifted up or down
// (never both) depending on how it compares against its new parent.
func (q *Queue[T, K]) heapRemove(e *entry[T, K]) {
	slot := e.slot
	last := len(q.heap) - 1
	if last == 0 {
		q.heap[0] = nil
		q.heap = q.heap[:0]
		e.slot = -1
		return
	}

	q.heapSwap(slot, last)
	q.heap[last] = nil // avoid memory leak
	q.heap = q.heap[:last]
	if slot < last {
		if slot > 0 && q.less(q.heap[slot].deadline, q.heap[(slot-1)/2].deadline) {
			q.siftUp(slot)
		} else {
			q.siftDown(slot)
		}
	}
	e.slot = -1
}

// siftUp moves the entry at the given slot up the heap to its correct position.
func (q *Queue[T, K]) siftUp(slot int) {
	for slot > 0 {
		parent := (slot - 1) / 2
		if !q.less(q.heap[slot].deadline, q.heap[parent].deadline) {
			break
		}
		q.heapSwap(slot, parent)
		slot = parent
	}
}

// siftDown moves the entry at the given slot down the heap to its correct position.
func (q *Queue[T, K]) siftDown(slot int) {
	for {
		child := 2*slot + 1
		if child >= len(q.heap) {
			break
		}
		if right := child + 1; right < len(q.heap) && q.less(q.heap[right].deadline, q.heap[child].deadline) {
			child = right
		}
		if !q.less(q.heap[child].deadline, q.heap[slot].deadline) {
			break
		}
		q.heapSwap(slot, child)
		slot = child
	}
}

// heapSwap swaps two slots and updates both entries' cached positions.
func (q *Queue[T, K]) heapSwap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.heap[i].slot = i
	q.heap[j].slot = j
}
