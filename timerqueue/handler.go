package timerqueue

// Handler is the capability invoked when a timer reaches its terminal state.
// Exactly one of the two methods is called, exactly once, after the timer has been removed from the queue.
type Handler interface {
	// Fire is invoked when the timer's deadline has passed.
	Fire()
	// Cancel is invoked when the timer is cancelled before firing.
	Cancel()
}

// HandlerFuncs adapts a pair of plain functions into a Handler.
// Either function may be nil, in which case that transition is a no-op.
type HandlerFuncs struct {
	OnFire   func()
	OnCancel func()
}

func (h HandlerFuncs) Fire() {
	if h.OnFire != nil {
		h.OnFire()
	}
}

func (h HandlerFuncs) Cancel() {
	if h.OnCancel != nil {
		h.OnCancel()
	}
}
