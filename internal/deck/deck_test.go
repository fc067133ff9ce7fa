// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package deck

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "deck.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "demo", d.ID)
	assert.Equal(t, PrintableArea{Width: 1920, Height: 1080}, d.PrintableArea)
	assert.Equal(t, []SlideID{"intro", "chart"}, d.SlideIDs())
	require.NotNil(t, d.CommonSlide)
	assert.Len(t, d.CommonSlide.Elements, 1)

	intro := d.Slide("intro")
	require.NotNil(t, intro)
	assert.True(t, intro.ShouldRenderWithCommonSlide)
	assert.Equal(t, KindText, intro.Elements[0].Kind)
	assert.Equal(t, "Hello deck", intro.Elements[0].Text)

	assert.Nil(t, d.Slide("missing"))
}

func TestLoad_JSON(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "deck.json"))
	require.NoError(t, err)
	assert.Equal(t, "portrait", d.ID)
	assert.Equal(t, HeightCapped, Fit(d.PrintableArea))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "duplicate.yaml"))
	assert.ErrorIs(t, err, ErrDuplicateSlide)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "zero area",
			doc:  "printableArea: {width: 0, height: 10}\nslides: [{id: a}]",
			want: ErrBadPrintingArea,
		},
		{
			name: "no slides",
			doc:  "printableArea: {width: 10, height: 10}\nslides: []",
			want: ErrNoSlides,
		},
		{
			name: "missing id",
			doc:  "printableArea: {width: 10, height: 10}\nslides: [{title: x}]",
			want: ErrMissingSlideID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("slides: [unterminated"))
	assert.Error(t, err)
}

func TestSlide_NilDeck(t *testing.T) {
	var d *Deck
	assert.Nil(t, d.Slide("a"))
}
