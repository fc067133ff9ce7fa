// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"sync"

	"github.com/apex/log"

	"github.com/staranto/deckthumb/internal/render"
)

// Surface is where painted artifacts end up.
type Surface interface {
	Draw(a *render.Artifact) error
}

// Target is the paint surface of one mounted miniature.
type Target struct {
	surface Surface

	mu        sync.Mutex
	current   *render.Artifact
	painted   bool
	stale     bool
	destroyed bool
	paints    int
}

// NewTarget returns a live, unpainted Target drawing onto s.
func NewTarget(s Surface) *Target {
	return &Target{surface: s}
}

// HasPaintedArtifact reports whether anything has been painted into t since
// it was created.
func (t *Target) HasPaintedArtifact() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.painted
}

// Paint replaces the target's content with a. It is a no-op on a destroyed
// target. A surface failure is logged, leaves the content as it was and
// marks the target stale until a later paint succeeds.
func (t *Target) Paint(a *render.Artifact) {
	if a == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.destroyed {
		log.WithField("slide", a.SlideID).Debug("paint into destroyed target dropped")
		return
	}
	if err := t.surface.Draw(a); err != nil {
		log.WithError(err).WithField("slide", a.SlideID).Warn("failed to paint miniature")
		t.stale = true
		return
	}
	t.current = a
	t.painted = true
	t.stale = false
	t.paints++
}

// Stale reports whether the last paint failed to reach the surface.
func (t *Target) Stale() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stale
}

// Current returns the artifact last painted, or nil.
func (t *Target) Current() *render.Artifact {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Paints returns how many paints reached the surface.
func (t *Target) Paints() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paints
}

// Destroy tears the target down. It cannot be revived.
func (t *Target) Destroy() {
	t.mu.Lock()
	t.destroyed = true
	t.mu.Unlock()
}

// Destroyed reports whether Destroy has been called.
func (t *Target) Destroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}
