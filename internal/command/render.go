// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/display"
	"github.com/staranto/deckthumb/internal/loop"
	"github.com/staranto/deckthumb/internal/meta"
	"github.com/staranto/deckthumb/internal/miniature"
)

// RenderCommandAction is the action handler for the "render" subcommand. It
// mounts a single miniature over a PNG file, lets the refresh run to
// completion and reports what was written.
func RenderCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	_, d, err := LoadDeckArg(cmd)
	if err != nil {
		return err
	}

	id := deck.SlideID(cmd.String("slide"))
	if id == "" {
		id = d.Slides[0].ID
	}
	s := d.Slide(id)
	if s == nil {
		return fmt.Errorf("slide %q not found in deck %q", id, d.ID)
	}

	out := cmd.String("out")
	if out == "" {
		dir, err := OutDir(cmd)
		if err != nil {
			return err
		}
		out = display.PathFor(dir, id)
	}

	l := loop.New()
	mini := miniature.Mount(NewDeps(l, cmd.Int("width"), -1), display.PNGFile{Path: out}, d, s)
	l.RunPending()
	mini.Unmount()

	if !mini.Target().HasPaintedArtifact() {
		return fmt.Errorf("failed to write miniature for %s to %s", id, out)
	}

	b := mini.Target().Current().Bounds()
	fmt.Fprintf(Writer(cmd), "%s\t%s\t%dx%d\t%s\n", id, out, b.Dx(), b.Dy(), fileSize(out))

	return nil
}

// fileSize returns the humanized size of the file at path, or "?".
func fileSize(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("failed to stat miniature")
		return "?"
	}
	return humanize.Bytes(uint64(fi.Size()))
}

// RenderCommandBuilder constructs the cli.Command for "render", wiring
// metadata, flags, and action handlers.
func RenderCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render one slide miniature to a PNG file",
		UsageText: `deckthumb render DECK [--slide ID] [--out FILE] [--width N]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "slide",
				Aliases: []string{"s"},
				Usage:   "slide to render. Defaults to the first slide",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			NewOutFlag("render", meta.Config.Source, "PNG file to write", false),
			NewWidthFlag("render", meta.Config.Source),
		},
		Action: RenderCommandAction,
	}
}
