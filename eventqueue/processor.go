// This code was adapted from https://github.com/dapr/kit/tree/v0.15.4/
// Copyright (C) 2023 The Dapr Authors
// License: Apache2

package eventqueue

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	kclock "k8s.io/utils/clock"

	"github.com/OrangeDS/timerkit/timerqueue"
)

// ErrProcessorStopped is returned by Enqueue when the processor has been closed.
var ErrProcessorStopped = errors.New("processor is stopped")

// queueable is the interface for items that can be queued.
type queueable[K comparable] interface {
	// Key returns the key for this unique item.
	Key() K
	// DueTime returns the time the item is due to be executed at.
	DueTime() time.Time
}

// Options for NewProcessor.
type Options[K comparable, T queueable[K]] struct {
	// Method invoked when an item is to be executed.
	// Each invocation happens in its own goroutine, so it is safe for it to call back into the processor.
	ExecuteFn func(r T)

	// Clock used to wait for items to come due.
	// This is optional and defaults to the real clock; it is overridden in tests.
	Clock kclock.Clock
}

// Processor manages the queue of items and processes them at the correct time.
// It owns a timerqueue.Queue internally, serializing all access to it with a lock,
// and keeps a single background goroutine parked on the earliest deadline.
type Processor[K comparable, T queueable[K]] struct {
	executeFn func(r T)
	queue     *timerqueue.Queue[time.Time, K]
	clock     kclock.Clock
	lock      sync.Mutex
	wakeCh    chan struct{}
	stopCh    chan struct{}
	runningCh chan struct{}
	stopped   atomic.Bool
}

// NewProcessor returns a new Processor object and starts its background goroutine.
func NewProcessor[K comparable, T queueable[K]](opts Options[K, T]) *Processor[K, T] {
	if opts.ExecuteFn == nil {
		// Indicates a development-time error
		panic("eventqueue: option ExecuteFn is required")
	}
	if opts.Clock == nil {
		opts.Clock = kclock.RealClock{}
	}

	p := &Processor[K, T]{
		executeFn: opts.ExecuteFn,
		queue:     timerqueue.New[time.Time, K](time.Time.Before),
		clock:     opts.Clock,
		wakeCh:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
	p.start()

	return p
}

// Enqueue adds a new item to the queue.
// If a pending item with the same key already exists, it is replaced without being executed.
func (p *Processor[K, T]) Enqueue(r T) error {
	if p.stopped.Load() {
		return ErrProcessorStopped
	}

	key := r.Key()

	p.lock.Lock()
	// Drop any pending item with the same key; the handler registered below has no
	// cancel path, so replacement is silent
	p.queue.Cancel(key)
	first := p.queue.Enqueue(r.DueTime(), key, timerqueue.HandlerFuncs{
		OnFire: func() {
			go p.executeFn(r)
		},
	})
	p.lock.Unlock()

	if first {
		// The new item is now the earliest: interrupt the background goroutine's
		// wait so it re-arms with the new deadline
		p.wake()
	}

	return nil
}

// Dequeue removes a pending item from the queue without executing it.
// It is a no-op if no item with the given key is pending.
func (p *Processor[K, T]) Dequeue(key K) {
	p.lock.Lock()
	p.queue.Cancel(key)
	p.lock.Unlock()
}

// Close stops the processor, interrupting the background goroutine.
// Items still pending are neither executed nor removed. Close is idempotent.
func (p *Processor[K, T]) Close() error {
	if p.stopped.CompareAndSwap(false, true) {
		close(p.stopCh)
	}
	<-p.runningCh
	return nil
}

func (p *Processor[K, T]) start() {
	p.runningCh = make(chan struct{})
	go func() {
		defer close(p.runningCh)

		for {
			p.lock.Lock()
			if p.queue.IsEmpty() {
				p.lock.Unlock()
				select {
				case <-p.stopCh:
					return
				case <-p.wakeCh:
					continue
				}
			}

			now := p.clock.Now()
			next := p.queue.EarliestDeadline()
			if !next.After(now) {
				// DispatchDue fires deadlines strictly before the given time, and items
				// due exactly now must fire too, so nudge the bound by a nanosecond
				p.queue.DispatchDue(now.Add(1))
				p.lock.Unlock()
				continue
			}
			p.lock.Unlock()

			t := p.clock.NewTimer(next.Sub(now))
			select {
			case <-p.stopCh:
				t.Stop()
				return
			case <-p.wakeCh:
				// An earlier item arrived; recompute the wait
				t.Stop()
			case <-t.C():
				// Loop around and dispatch
			}
		}
	}()
}

// wake signals the background goroutine without blocking; a signal already
// pending is sufficient.
func (p *Processor[K, T]) wake() {
	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
}
