// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package debounce coalesces rapidly changing values into settled ones.
package debounce

import (
	"sync"
	"time"

	"github.com/staranto/deckthumb/internal/loop"
)

// DefaultWindow is the quiescence window used when none is configured.
const DefaultWindow = 500 * time.Millisecond

// Value latches the last value that stayed unchanged for a whole window.
// Values are compared with ==, so pointers compare by identity.
type Value[T comparable] struct {
	loop     *loop.Loop
	window   time.Duration
	onSettle func(T)
	onIdle   func()

	mu      sync.Mutex
	pending T
	settled T
	gen     uint64
	timer   *time.Timer
	stopped bool
}

// New returns a Value whose initial value is already settled. onSettle runs
// on the loop each time a different value settles.
func New[T comparable](l *loop.Loop, initial T, window time.Duration, onSettle func(T)) *Value[T] {
	return &Value[T]{
		loop:     l,
		window:   window,
		onSettle: onSettle,
		pending:  initial,
		settled:  initial,
	}
}

// OnIdle registers fn to run on the loop when a window closes on the value
// that was already settled, as when a burst ends where it started. onSettle
// does not run in that case.
func (v *Value[T]) OnIdle(fn func()) {
	v.mu.Lock()
	v.onIdle = fn
	v.mu.Unlock()
}

// Set records x and restarts the window. Setting the value already pending
// leaves the running window alone.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped || x == v.pending {
		return
	}
	v.pending = x
	v.gen++
	gen := v.gen

	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	if v.window <= 0 {
		v.loop.Post(func() { v.settle(gen) })
		return
	}
	v.timer = v.loop.AfterFunc(v.window, func() { v.settle(gen) })
}

// settle runs on the loop. A fire from a superseded window is ignored.
func (v *Value[T]) settle(gen uint64) {
	v.mu.Lock()
	if v.stopped || gen != v.gen {
		v.mu.Unlock()
		return
	}
	x := v.pending
	changed := x != v.settled
	v.settled = x
	v.timer = nil
	onIdle := v.onIdle
	v.mu.Unlock()

	switch {
	case changed && v.onSettle != nil:
		v.onSettle(x)
	case !changed && onIdle != nil:
		onIdle()
	}
}

// Settled returns the last settled value.
func (v *Value[T]) Settled() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settled
}

// Pending returns the most recently set value.
func (v *Value[T]) Pending() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// Stop cancels any running window. Later calls to Set are ignored.
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}
