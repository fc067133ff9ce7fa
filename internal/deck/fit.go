// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package deck

import "math"

// MiniatureAspectRatio is the width:height of the box a miniature is shown in.
const MiniatureAspectRatio = 3.0 / 2.0

// MiniatureFit says which side of the miniature box a slide fills.
type MiniatureFit int

const (
	// WidthCapped slides are at least as wide as the box and fill its width.
	WidthCapped MiniatureFit = iota
	// HeightCapped slides are narrower than the box and fill its height.
	HeightCapped
)

func (f MiniatureFit) String() string {
	if f == HeightCapped {
		return "height-capped"
	}
	return "width-capped"
}

// Fit returns how a slide with the given printable area sits in a miniature.
func Fit(area PrintableArea) MiniatureFit {
	if area.Height <= 0 {
		return WidthCapped
	}
	if area.Width/area.Height < MiniatureAspectRatio {
		return HeightCapped
	}
	return WidthCapped
}

// Size returns the pixel size of a miniature whose capped side is box pixels
// long. The other side keeps the slide's aspect ratio.
func Size(area PrintableArea, box int) (w, h int) {
	if area.Width <= 0 || area.Height <= 0 || box <= 0 {
		return 0, 0
	}
	ratio := area.Width / area.Height
	switch Fit(area) {
	case HeightCapped:
		h = int(math.Round(float64(box) / MiniatureAspectRatio))
		w = int(math.Round(float64(h) * ratio))
	default:
		w = box
		h = int(math.Round(float64(box) / ratio))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
