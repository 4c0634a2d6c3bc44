package highlight

import "sync"

// Deferrer runs work on a later turn of a single-threaded loop, never inside
// the call that enqueued it.
type Deferrer interface {
	Defer(fn func())
}

// Compile-time interface verification.
var _ Deferrer = (*Loop)(nil)

// Loop is a cooperative single-threaded task queue. Tasks queued during a turn
// run on the next turn.
type Loop struct {
	mu    sync.Mutex
	queue []func()
}

// NewLoop creates an empty Loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Defer queues fn for the next turn.
func (l *Loop) Defer(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, fn)
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Turn runs the tasks queued before it started and reports whether any ran.
func (l *Loop) Turn() bool {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks) > 0
}

// Drain runs turns until the queue is empty or maxTurns turns have run, and
// returns the number of turns run.
func (l *Loop) Drain(maxTurns int) int {
	n := 0
	for n < maxTurns && l.Turn() {
		n++
	}
	return n
}
