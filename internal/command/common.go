// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/deckthumb/internal/cache"
	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/display"
	"github.com/staranto/deckthumb/internal/loop"
	"github.com/staranto/deckthumb/internal/meta"
	"github.com/staranto/deckthumb/internal/miniature"
	"github.com/staranto/deckthumb/internal/render"
)

var errNoDeck = errors.New("no deck file given")

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Writer returns where the command should print results.
func Writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.Writer != nil {
			return root.Writer
		}
	}
	return os.Stdout
}

// LoadDeckArg loads the deck named by the first positional argument.
func LoadDeckArg(cmd *cli.Command) (string, *deck.Deck, error) {
	path := cmd.Args().First()
	if path == "" {
		return "", nil, errNoDeck
	}
	d, err := deck.Load(path)
	if err != nil {
		return path, nil, err
	}
	return path, d, nil
}

// NewDeps wires the shared collaborators of the miniatures a command mounts.
func NewDeps(l *loop.Loop, width int, debounce time.Duration) miniature.Deps {
	return miniature.Deps{
		Loop:     l,
		Renderer: render.NewCanvas(width),
		Cache:    cache.Default,
		Debounce: debounce,
	}
}

// OutDir resolves the directory miniatures are written to.
func OutDir(cmd *cli.Command) (string, error) {
	if dir := cmd.String("out"); dir != "" {
		return dir, nil
	}
	if dir, ok := display.DefaultDir(); ok {
		log.Debugf("using default output directory %s", dir)
		return dir, nil
	}
	return "", errors.New("no output directory; use --out")
}
