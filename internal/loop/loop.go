// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loop

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
)

// Task is a unit of work run on the loop goroutine.
type Task func()

// Option configures a Loop.
type Option func(*Loop)

// WithPanicHandler recovers panicking tasks and hands the recovered value to
// fn. Without it a panic propagates out of Run or RunPending.
func WithPanicHandler(fn func(any)) Option {
	return func(l *Loop) {
		l.onPanic = fn
	}
}

// Loop is a two-level FIFO task queue. Post and Defer may be called from any
// goroutine; tasks only ever run inside Run or RunPending.
type Loop struct {
	mu     sync.Mutex
	normal []Task
	idle   []Task
	closed bool
	wake   chan struct{}

	onPanic func(any)
}

// New returns an empty, open Loop.
func New(opts ...Option) *Loop {
	l := &Loop{wake: make(chan struct{}, 1)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues t behind every normal task already queued.
func (l *Loop) Post(t Task) {
	l.enqueue(t, false)
}

// Defer queues t at the lowest priority. It runs on a later turn than the
// caller's, after all normal tasks queued before it gets its turn.
func (l *Loop) Defer(t Task) {
	l.enqueue(t, true)
}

// AfterFunc posts t once d has elapsed. The returned timer can be stopped to
// cancel a post that has not happened yet.
func (l *Loop) AfterFunc(d time.Duration, t Task) *time.Timer {
	return time.AfterFunc(d, func() { l.Post(t) })
}

func (l *Loop) enqueue(t Task, idle bool) {
	if t == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if idle {
		l.idle = append(l.idle, t)
	} else {
		l.normal = append(l.normal, t)
	}
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Close stops the loop from accepting tasks. Tasks already queued still run;
// Run returns once they are done.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.signal()
}

// Pending returns the number of normal and idle tasks waiting.
func (l *Loop) Pending() (normal, idle int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.normal), len(l.idle)
}

func (l *Loop) next() (Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.normal) > 0 {
		t := l.normal[0]
		l.normal[0] = nil
		l.normal = l.normal[1:]
		return t, true
	}
	if len(l.idle) > 0 {
		t := l.idle[0]
		l.idle[0] = nil
		l.idle = l.idle[1:]
		return t, true
	}
	return nil, false
}

// RunPending runs queued tasks, including any they queue, until both queues
// are empty. It never blocks waiting for new work and returns the number of
// tasks run. It must not be called concurrently with Run.
func (l *Loop) RunPending() int {
	n := 0
	for {
		t, ok := l.next()
		if !ok {
			return n
		}
		l.run(t)
		n++
	}
}

// Run drives the loop on the calling goroutine until ctx is done or Close is
// called and the queues have drained.
func (l *Loop) Run(ctx context.Context) error {
	log.Debug("loop: started")
	for {
		l.RunPending()

		l.mu.Lock()
		done := l.closed && len(l.normal) == 0 && len(l.idle) == 0
		l.mu.Unlock()
		if done {
			log.Debug("loop: closed")
			return nil
		}

		select {
		case <-ctx.Done():
			log.Debug("loop: stopped")
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) run(t Task) {
	if l.onPanic == nil {
		t()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.onPanic(r)
		}
	}()
	t()
}
