// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/render"
)

// Canvas is an in-memory surface holding a copy of the last drawn image.
type Canvas struct {
	mu  sync.Mutex
	img *image.RGBA
}

// Draw implements Surface.
func (c *Canvas) Draw(a *render.Artifact) error {
	if a.Image == nil {
		return fmt.Errorf("artifact for %s has no image", a.SlideID)
	}
	img := image.NewRGBA(a.Image.Bounds())
	draw.Draw(img, img.Bounds(), a.Image, a.Image.Bounds().Min, draw.Src)

	c.mu.Lock()
	c.img = img
	c.mu.Unlock()
	return nil
}

// Image returns the last drawn image, or nil.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img
}

// PNGFile is a surface that keeps a PNG file on disk up to date. Readers of
// the file never observe a partial write.
type PNGFile struct {
	Path string
}

// Draw implements Surface.
func (p PNGFile) Draw(a *render.Artifact) error {
	b, err := a.PNG()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := atomic.WriteFile(p.Path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.Path, err)
	}
	log.Debugf("wrote %s (%s)", p.Path, humanize.Bytes(uint64(len(b))))
	return nil
}

// DefaultDir resolves the directory miniatures are written to when none is
// given.
// Precedence:
//  1. DECKTHUMB_OUT_DIR, if set and non-empty
//  2. os.UserCacheDir()/deckthumb
//
// Returns ("", false) if no directory can be resolved.
func DefaultDir() (string, bool) {
	if d, ok := os.LookupEnv("DECKTHUMB_OUT_DIR"); ok && d != "" {
		return d, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "deckthumb"), true
	}
	return "", false
}

var safeName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// PathFor returns the PNG path for a slide beneath dir. Ids that are not safe
// file names are hashed.
func PathFor(dir string, id deck.SlideID) string {
	name := string(id)
	if !safeName.MatchString(name) {
		name = encodeKey(name)
	}
	return filepath.Join(dir, name+".png")
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
