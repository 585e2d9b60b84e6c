package search

import (
	"context"
	"sync"
)

// Executor runs functions on the goroutine that owns a Controller.
// Post may be called from any goroutine and must not block on the
// execution of fn.
type Executor interface {
	Post(fn func())
}

// ExecutorFunc adapts a function to the Executor interface
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Post(fn func()) { f(fn) }

// Loop is a serial executor. Posted functions run in order, one at a
// time, on whichever goroutine calls Run or RunPending.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn; the queue is unbounded so posting from inside a
// running task never deadlocks
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending runs every task queued so far and returns how many ran.
// Tasks posted while draining are left for the next call.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Run processes tasks until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
