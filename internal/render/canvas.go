// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gopkg.in/yaml.v3"

	"github.com/staranto/deckthumb/internal/deck"
)

// DefaultWidth is the miniature box width used when none is configured.
const DefaultWidth = 240

// supersample is the factor slides are rasterized at before being scaled
// down to the miniature size.
const supersample = 2

var (
	white    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black    = color.RGBA{0x00, 0x00, 0x00, 0xff}
	disabled = color.NRGBA{0x80, 0x80, 0x80, 0x60}
)

// Canvas rasterizes slides into miniatures that fit a box Width pixels wide.
// It remembers the last artifact per slide and returns it again while the
// slide's input is unchanged. Safe for concurrent use.
type Canvas struct {
	Width int

	mu      sync.Mutex
	memo    map[deck.SlideID]*Artifact
	renders atomic.Int64
}

// NewCanvas returns a Canvas for the given box width. Non-positive widths
// mean DefaultWidth.
func NewCanvas(width int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Canvas{
		Width: width,
		memo:  make(map[deck.SlideID]*Artifact),
	}
}

// Renders reports how many times a slide was actually rasterized, memo hits
// excluded.
func (c *Canvas) Renders() int {
	return int(c.renders.Load())
}

// RenderSlide implements Renderer.
func (c *Canvas) RenderSlide(d *deck.Deck, id deck.SlideID) *Artifact {
	s := d.Slide(id)
	if s == nil {
		panic(fmt.Sprintf("render: slide %q is not in deck %q", id, d.ID))
	}

	hash := c.inputHash(d, s)

	c.mu.Lock()
	if a, ok := c.memo[id]; ok && a.Hash == hash {
		c.mu.Unlock()
		return a
	}
	c.mu.Unlock()

	start := time.Now()
	a := &Artifact{
		SlideID:    id,
		Hash:       hash,
		Image:      c.rasterize(d, s),
		RenderedAt: start,
	}
	c.renders.Add(1)

	c.mu.Lock()
	c.memo[id] = a
	c.mu.Unlock()

	log.WithFields(log.Fields{
		"slide": id,
		"took":  time.Since(start),
	}).Debug("rendered miniature")

	return a
}

// inputHash digests everything that affects the pixels of s.
func (c *Canvas) inputHash(d *deck.Deck, s *deck.Slide) string {
	in := struct {
		Width  int
		Area   deck.PrintableArea
		Common *deck.Slide `yaml:",omitempty"`
		Slide  *deck.Slide
	}{Width: c.Width, Area: d.PrintableArea, Slide: s}
	if s.ShouldRenderWithCommonSlide {
		in.Common = d.CommonSlide
	}

	b, err := yaml.Marshal(in)
	if err != nil {
		b = []byte(fmt.Sprintf("%#v", in))
	}
	h := md5.New()
	_, _ = h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Canvas) rasterize(d *deck.Deck, s *deck.Slide) *image.RGBA {
	w, h := deck.Size(d.PrintableArea, c.Width)
	big := image.NewRGBA(image.Rect(0, 0, w*supersample, h*supersample))
	scale := float64(w*supersample) / d.PrintableArea.Width

	draw.Draw(big, big.Bounds(), image.NewUniform(parseColor(s.Background, white)), image.Point{}, draw.Src)

	if s.ShouldRenderWithCommonSlide && d.CommonSlide != nil {
		for _, e := range d.CommonSlide.Elements {
			drawElement(big, e, scale)
		}
	}
	for _, e := range s.Elements {
		drawElement(big, e, scale)
	}
	if s.Title != "" {
		drawText(big, 4*supersample, 14*supersample, s.Title, black)
	}
	if !s.ShouldRender {
		draw.Draw(big, big.Bounds(), image.NewUniform(disabled), image.Point{}, draw.Over)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)
	return out
}

func drawElement(dst *image.RGBA, e deck.Element, scale float64) {
	x0 := int(e.X * scale)
	y0 := int(e.Y * scale)
	x1 := int((e.X + e.Width) * scale)
	y1 := int((e.Y + e.Height) * scale)
	col := parseColor(e.Color, black)

	switch e.Kind {
	case deck.KindRect:
		draw.Draw(dst, image.Rect(x0, y0, x1, y1), image.NewUniform(col), image.Point{}, draw.Src)
	case deck.KindEllipse:
		fillEllipse(dst, image.Rect(x0, y0, x1, y1), col)
	case deck.KindLine:
		drawLine(dst, x0, y0, x1, y1, supersample, col)
	case deck.KindText:
		drawText(dst, x0, y0, e.Text, col)
	default:
		log.Debugf("skipping element of unknown kind %q", e.Kind)
	}
}

func fillEllipse(dst *image.RGBA, r image.Rectangle, col color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	clip := r.Intersect(dst.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				dst.Set(x, y, col)
			}
		}
	}
}

// drawLine draws a square-brushed line with Bresenham's algorithm.
func drawLine(dst *image.RGBA, x0, y0, x1, y1, thickness int, col color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	brush := image.NewUniform(col)
	e := dx + dy
	for {
		draw.Draw(dst, image.Rect(x0, y0, x0+thickness, y0+thickness), brush, image.Point{}, draw.Src)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func drawText(dst *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// parseColor accepts #rgb and #rrggbb. Anything else yields def.
func parseColor(s string, def color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
