// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package miniature

import (
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/staranto/deckthumb/internal/cache"
	"github.com/staranto/deckthumb/internal/debounce"
	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/display"
	"github.com/staranto/deckthumb/internal/loop"
	"github.com/staranto/deckthumb/internal/render"
)

// Deps are the collaborators shared by every miniature.
type Deps struct {
	Loop     *loop.Loop
	Renderer render.Renderer
	// Cache defaults to cache.Default.
	Cache *cache.Cache
	// Debounce is the quiescence window for deck and slide changes. Zero
	// means debounce.DefaultWindow; negative settles on the next loop turn.
	Debounce time.Duration
}

func (d Deps) window() time.Duration {
	switch {
	case d.Debounce == 0:
		return debounce.DefaultWindow
	case d.Debounce < 0:
		return 0
	default:
		return d.Debounce
	}
}

// Miniature is one on-screen miniature of a slide. All methods must be called
// on the loop goroutine.
type Miniature struct {
	loop     *loop.Loop
	renderer render.Renderer
	cache    *cache.Cache
	target   *display.Target

	deck  *debounce.Value[*deck.Deck]
	slide *debounce.Value[*deck.Slide]

	// dirty is set when a settle was skipped because the other input was
	// still pending. Loop goroutine only.
	dirty bool

	mu  sync.Mutex
	raw *deck.Deck
}

// Mount binds a new miniature of s to surface and runs its first refresh.
func Mount(deps Deps, surface display.Surface, d *deck.Deck, s *deck.Slide) *Miniature {
	m := &Miniature{
		loop:     deps.Loop,
		renderer: deps.Renderer,
		cache:    deps.Cache,
		target:   display.NewTarget(surface),
		raw:      d,
	}
	if m.cache == nil {
		m.cache = cache.Default
	}

	w := deps.window()
	m.deck = debounce.New(deps.Loop, d, w, func(*deck.Deck) { m.trigger() })
	m.slide = debounce.New(deps.Loop, s, w, func(*deck.Slide) { m.trigger() })
	m.deck.OnIdle(m.resume)
	m.slide.OnIdle(m.resume)

	log.WithField("slide", s.ID).Debug("miniature mounted")
	m.trigger()
	return m
}

// Update feeds the latest raw deck and slide. Only settled changes cause a
// refresh.
func (m *Miniature) Update(d *deck.Deck, s *deck.Slide) {
	m.mu.Lock()
	m.raw = d
	m.mu.Unlock()

	m.deck.Set(d)
	m.slide.Set(s)
}

// Unmount stops reacting to updates and destroys the target. Refreshes that
// are already queued still run but cannot paint.
func (m *Miniature) Unmount() {
	m.deck.Stop()
	m.slide.Stop()
	m.target.Destroy()
	log.WithField("slide", m.SlideID()).Debug("miniature unmounted")
}

// Target returns the miniature's display target.
func (m *Miniature) Target() *display.Target {
	return m.target
}

// SlideID returns the id of the settled slide.
func (m *Miniature) SlideID() deck.SlideID {
	return m.slide.Settled().ID
}

// Fit reports how the latest raw deck sits in the miniature box.
func (m *Miniature) Fit() deck.MiniatureFit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deck.Fit(m.raw.PrintableArea)
}

// trigger reacts to a settled (deck, slide) pair. While either input still
// has a newer value waiting to settle it only marks the miniature dirty; the
// next window that closes on that input triggers again, changed or not.
func (m *Miniature) trigger() {
	if m.deck.Pending() != m.deck.Settled() || m.slide.Pending() != m.slide.Settled() {
		m.dirty = true
		return
	}
	m.dirty = false
	d, id := m.deck.Settled(), m.slide.Settled().ID

	if !m.target.HasPaintedArtifact() {
		if a, ok := m.cache.Get(id); ok {
			m.target.Paint(a)
		}
	}

	m.loop.Defer(func() { m.refresh(d, id) })
}

// resume replays a trigger that was skipped while an input was pending and
// has since gone back to its settled value.
func (m *Miniature) resume() {
	if m.dirty {
		m.trigger()
	}
}

// refresh re-renders the slide and repaints if the renderer produced a
// different artifact from the one cached now, or if the target missed the
// last paint.
func (m *Miniature) refresh(d *deck.Deck, id deck.SlideID) {
	cached, _ := m.cache.Get(id)
	updated := m.renderer.RenderSlide(d, id)
	if updated == cached && !m.target.Stale() {
		log.WithField("slide", id).Debug("miniature unchanged")
		return
	}
	m.target.Paint(updated)
	m.cache.Set(id, updated)
}
