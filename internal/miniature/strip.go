// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package miniature

import (
	"github.com/apex/log"

	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/display"
)

// SurfaceFunc returns the surface a slide's miniature is drawn onto.
type SurfaceFunc func(id deck.SlideID) display.Surface

// Strip keeps one Miniature per slide of a deck, like the slide list next to
// an editor. Must only be used on the loop goroutine.
type Strip struct {
	deps    Deps
	surface SurfaceFunc
	minis   map[deck.SlideID]*Miniature
	order   []deck.SlideID
}

// NewStrip returns an empty strip. Call Sync to mount miniatures.
func NewStrip(deps Deps, surface SurfaceFunc) *Strip {
	return &Strip{
		deps:    deps,
		surface: surface,
		minis:   make(map[deck.SlideID]*Miniature),
	}
}

// Sync brings the strip in line with d: new slides are mounted, existing
// ones updated and removed ones unmounted.
func (st *Strip) Sync(d *deck.Deck) {
	seen := make(map[deck.SlideID]bool, len(d.Slides))
	order := make([]deck.SlideID, 0, len(d.Slides))

	for _, s := range d.Slides {
		seen[s.ID] = true
		order = append(order, s.ID)
		if m, ok := st.minis[s.ID]; ok {
			m.Update(d, s)
			continue
		}
		st.minis[s.ID] = Mount(st.deps, st.surface(s.ID), d, s)
	}

	for id, m := range st.minis {
		if !seen[id] {
			m.Unmount()
			delete(st.minis, id)
		}
	}
	st.order = order

	log.WithFields(log.Fields{
		"deck":   d.ID,
		"slides": len(order),
	}).Debug("strip synced")
}

// Get returns the miniature for id, if mounted.
func (st *Strip) Get(id deck.SlideID) (*Miniature, bool) {
	m, ok := st.minis[id]
	return m, ok
}

// IDs returns the mounted slide ids in deck order.
func (st *Strip) IDs() []deck.SlideID {
	return append([]deck.SlideID(nil), st.order...)
}

// Close unmounts every miniature.
func (st *Strip) Close() {
	for id, m := range st.minis {
		m.Unmount()
		delete(st.minis, id)
	}
	st.order = nil
}
