// Package controller sits between the presentation layer and the
// repositories. Mutations are dispatched onto a background worker so
// the calling (UI) goroutine never blocks on store I/O; commands run
// in the order they were issued.
package controller

import (
	"errors"
	"sync"
)

// ErrClosed reports a command issued after the controller shut down.
var ErrClosed = errors.New("controller closed")

// queue is a serialized background command runner shared by the
// controllers. One goroutine drains the channel, so two mutations
// never interleave.
type queue struct {
	mu     sync.Mutex
	cmds   chan func()
	done   chan struct{}
	closed bool
}

func newQueue() *queue {
	q := &queue{
		cmds: make(chan func(), 64),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *queue) loop() {
	defer close(q.done)
	for fn := range q.cmds {
		fn()
	}
}

// dispatch enqueues fn, or returns ErrClosed after close.
func (q *queue) dispatch(fn func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.cmds <- fn
	return nil
}

// close drains pending commands and stops the worker.
func (q *queue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.cmds)
	q.mu.Unlock()
	<-q.done
}
