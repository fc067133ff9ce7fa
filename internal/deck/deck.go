// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSlides        = errors.New("deck has no slides")
	ErrMissingSlideID  = errors.New("slide has no id")
	ErrDuplicateSlide  = errors.New("duplicate slide id")
	ErrBadPrintingArea = errors.New("printable area must be positive")
)

// SlideID identifies a slide within a deck. It survives edits to the slide's
// content.
type SlideID string

// PrintableArea is the size, in deck units, of every slide in the deck.
type PrintableArea struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Element kinds understood by the renderer.
const (
	KindRect    = "rect"
	KindEllipse = "ellipse"
	KindLine    = "line"
	KindText    = "text"
)

// Element is one drawable item on a slide. Coordinates are in deck units
// relative to the printable area's top-left corner.
type Element struct {
	Kind   string  `yaml:"kind" json:"kind"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Color  string  `yaml:"color,omitempty" json:"color,omitempty"`
	Text   string  `yaml:"text,omitempty" json:"text,omitempty"`
}

// Slide is a snapshot of one slide.
type Slide struct {
	ID                          SlideID   `yaml:"id" json:"id"`
	Title                       string    `yaml:"title,omitempty" json:"title,omitempty"`
	Background                  string    `yaml:"background,omitempty" json:"background,omitempty"`
	ShouldRender                bool      `yaml:"shouldRender" json:"shouldRender"`
	ShouldRenderWithCommonSlide bool      `yaml:"shouldRenderWithCommonSlide" json:"shouldRenderWithCommonSlide"`
	Elements                    []Element `yaml:"elements,omitempty" json:"elements,omitempty"`
}

// Deck is a snapshot of the whole deck.
type Deck struct {
	ID            string        `yaml:"id" json:"id"`
	PrintableArea PrintableArea `yaml:"printableArea" json:"printableArea"`
	CommonSlide   *Slide        `yaml:"commonSlide,omitempty" json:"commonSlide,omitempty"`
	Slides        []*Slide      `yaml:"slides" json:"slides"`
}

// Slide returns the slide with the given id, or nil.
func (d *Deck) Slide(id SlideID) *Slide {
	if d == nil {
		return nil
	}
	for _, s := range d.Slides {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SlideIDs returns the ids of all slides in deck order.
func (d *Deck) SlideIDs() []SlideID {
	ids := make([]SlideID, 0, len(d.Slides))
	for _, s := range d.Slides {
		ids = append(ids, s.ID)
	}
	return ids
}

// Validate checks the invariants every consumer relies on.
func (d *Deck) Validate() error {
	if d.PrintableArea.Width <= 0 || d.PrintableArea.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrBadPrintingArea, d.PrintableArea.Width, d.PrintableArea.Height)
	}
	if len(d.Slides) == 0 {
		return ErrNoSlides
	}
	seen := make(map[SlideID]bool, len(d.Slides))
	for i, s := range d.Slides {
		if s == nil || s.ID == "" {
			return fmt.Errorf("%w: index %d", ErrMissingSlideID, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSlide, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// Parse decodes a deck from YAML (or JSON, which YAML accepts) and validates
// it.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads and parses the deck file at path.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("loaded deck %q with %d slides from %s", d.ID, len(d.Slides), path)
	return d, nil
}
