// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/deckthumb/internal/deck"
)

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID:            "t",
		PrintableArea: deck.PrintableArea{Width: 1920, Height: 1080},
		CommonSlide: &deck.Slide{
			ID: "common",
			Elements: []deck.Element{
				{Kind: deck.KindRect, X: 0, Y: 980, Width: 1920, Height: 100, Color: "#00f"},
			},
		},
		Slides: []*deck.Slide{
			{
				ID:           "a",
				Title:        "A",
				Background:   "#ffffff",
				ShouldRender: true,
				Elements: []deck.Element{
					{Kind: deck.KindRect, X: 0, Y: 0, Width: 960, Height: 540, Color: "#ff0000"},
					{Kind: deck.KindEllipse, X: 1200, Y: 300, Width: 300, Height: 300, Color: "#00ff00"},
					{Kind: deck.KindLine, X: 100, Y: 900, Width: 1700, Color: "#000"},
					{Kind: deck.KindText, X: 100, Y: 700, Text: "hi"},
					{Kind: "sparkle"},
				},
			},
			{ID: "b", ShouldRender: true, ShouldRenderWithCommonSlide: true},
		},
	}
}

func TestCanvas_RenderSlide(t *testing.T) {
	c := NewCanvas(240)
	d := testDeck()

	a := c.RenderSlide(d, "a")
	require.NotNil(t, a)
	assert.Equal(t, deck.SlideID("a"), a.SlideID)
	assert.NotEmpty(t, a.Hash)
	assert.Equal(t, 240, a.Bounds().Dx())
	assert.Equal(t, 135, a.Bounds().Dy())

	// Top-left quadrant is the red rectangle.
	r, g, b, _ := a.Image.At(20, 60).RGBA()
	assert.Greater(t, r, g)
	assert.Greater(t, r, b)

	assert.Equal(t, 1, c.Renders())
}

func TestCanvas_MemoizesUnchangedInput(t *testing.T) {
	c := NewCanvas(120)
	d := testDeck()

	first := c.RenderSlide(d, "a")

	// A new snapshot with identical content yields the same artifact.
	clone := testDeck()
	second := c.RenderSlide(clone, "a")
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Renders())

	// Changing the slide produces a new artifact.
	clone.Slides[0].Title = "changed"
	third := c.RenderSlide(clone, "a")
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, c.Renders())
}

func TestCanvas_CommonSlideAffectsOptedInSlidesOnly(t *testing.T) {
	c := NewCanvas(120)
	d := testDeck()

	a1 := c.RenderSlide(d, "a")
	b1 := c.RenderSlide(d, "b")

	d2 := testDeck()
	d2.CommonSlide.Elements[0].Color = "#0f0"

	assert.Same(t, a1, c.RenderSlide(d2, "a"))
	assert.NotSame(t, b1, c.RenderSlide(d2, "b"))
}

func TestCanvas_DisabledSlideIsDimmed(t *testing.T) {
	c := NewCanvas(120)
	d := testDeck()
	d.Slides[1].ShouldRenderWithCommonSlide = false

	lit := c.RenderSlide(d, "b")
	d.Slides[1] = &deck.Slide{ID: "b"}
	dim := c.RenderSlide(d, "b")

	lr, _, _, _ := lit.Image.At(60, 30).RGBA()
	dr, _, _, _ := dim.Image.At(60, 30).RGBA()
	assert.Less(t, dr, lr)
}

func TestCanvas_UnknownSlidePanics(t *testing.T) {
	c := NewCanvas(120)
	assert.Panics(t, func() {
		c.RenderSlide(testDeck(), "nope")
	})
}

func TestArtifact_PNG(t *testing.T) {
	a := NewCanvas(60).RenderSlide(testDeck(), "a")

	b, err := a.PNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, a.Bounds(), img.Bounds())

	var empty *Artifact
	_, err = empty.PNG()
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff8000", color.RGBA{0xff, 0x80, 0x00, 0xff}},
		{"0f0", color.RGBA{0x00, 0xff, 0x00, 0xff}},
		{" #FFF ", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"", def},
		{"#12345", def},
		{"#zzzzzz", def},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseColor(tt.in, def))
		})
	}
}

func TestRendererFunc(t *testing.T) {
	want := &Artifact{SlideID: "x"}
	var r Renderer = RendererFunc(func(*deck.Deck, deck.SlideID) *Artifact { return want })
	assert.Same(t, want, r.RenderSlide(nil, "x"))
}
