// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/deckthumb/internal/cache"
	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/display"
	"github.com/staranto/deckthumb/internal/loop"
	"github.com/staranto/deckthumb/internal/miniature"
	"github.com/staranto/deckthumb/internal/render"
)

const deckV1 = `id: w
printableArea: {width: 300, height: 200}
slides:
  - id: one
    shouldRender: true
  - id: two
    shouldRender: true
`

const deckV2 = `id: w
printableArea: {width: 300, height: 200}
slides:
  - id: one
    title: edited
    shouldRender: true
  - id: three
    shouldRender: true
`

func waitForFile(t *testing.T, p string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(p); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("%s never appeared", p)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "deck.yaml")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(deckPath, []byte(deckV1), 0o600))

	l := loop.New()
	deps := miniature.Deps{
		Loop:     l,
		Renderer: render.NewCanvas(60),
		Cache:    cache.New(),
		Debounce: 20 * time.Millisecond,
	}
	strip := miniature.NewStrip(deps, func(id deck.SlideID) display.Surface {
		return display.PNGFile{Path: display.PathFor(outDir, id)}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- Watch(ctx, l, strip, deckPath, 10*time.Millisecond) }()

	waitForFile(t, filepath.Join(outDir, "one.png"))
	waitForFile(t, filepath.Join(outDir, "two.png"))

	// Make sure the new file is not mistaken for the old one.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(deckPath, []byte(deckV2), 0o600))

	waitForFile(t, filepath.Join(outDir, "three.png"))

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_MissingDeck(t *testing.T) {
	l := loop.New()
	strip := miniature.NewStrip(miniature.Deps{Loop: l, Renderer: render.NewCanvas(60)}, nil)
	err := Watch(context.Background(), l, strip, filepath.Join(t.TempDir(), "nope.yaml"), time.Second)
	assert.Error(t, err)
}

func TestDeckPoller(t *testing.T) {
	p := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(p, []byte(deckV1), 0o600))

	poller, err := newDeckPoller(p)
	require.NoError(t, err)

	changed, err := poller.changed()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(p, []byte(deckV2), 0o600))
	changed, err = poller.changed()
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Remove(p))
	_, err = poller.changed()
	assert.Error(t, err)
}
