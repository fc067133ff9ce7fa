// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/staranto/deckthumb/internal/deck"
)

// Artifact is one rendered miniature. It must not be modified after it is
// returned by a Renderer.
type Artifact struct {
	SlideID deck.SlideID
	// Hash identifies the input the artifact was rendered from.
	Hash       string
	Image      *image.RGBA
	RenderedAt time.Time
}

// Bounds returns the pixel bounds of the artifact, or an empty rectangle.
func (a *Artifact) Bounds() image.Rectangle {
	if a == nil || a.Image == nil {
		return image.Rectangle{}
	}
	return a.Image.Bounds()
}

// PNG encodes the artifact's image.
func (a *Artifact) PNG() ([]byte, error) {
	if a == nil || a.Image == nil {
		return nil, fmt.Errorf("no image to encode")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, a.Image); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", a.SlideID, err)
	}
	return buf.Bytes(), nil
}

// Renderer produces the artifact for one slide of a deck. Implementations
// panic when id is not a slide of d.
type Renderer interface {
	RenderSlide(d *deck.Deck, id deck.SlideID) *Artifact
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(d *deck.Deck, id deck.SlideID) *Artifact

// RenderSlide implements Renderer.
func (f RendererFunc) RenderSlide(d *deck.Deck, id deck.SlideID) *Artifact {
	return f(d, id)
}
