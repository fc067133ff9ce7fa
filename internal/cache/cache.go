// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sync"

	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/render"
)

// Default is the process-wide artifact cache.
var Default = New()

// Cache maps slide ids to the last completed artifact for that slide.
type Cache struct {
	mu sync.RWMutex
	m  map[deck.SlideID]*render.Artifact
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{m: make(map[deck.SlideID]*render.Artifact)}
}

// Get returns the cached artifact for id, if any.
func (c *Cache) Get(id deck.SlideID) (*render.Artifact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.m[id]
	return a, ok
}

// Set stores a as the artifact for id, replacing any previous entry.
func (c *Cache) Set(id deck.SlideID, a *render.Artifact) {
	c.mu.Lock()
	c.m[id] = a
	c.mu.Unlock()
}

// Len returns the number of cached slides.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
