// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/display"
	"github.com/staranto/deckthumb/internal/loop"
	"github.com/staranto/deckthumb/internal/meta"
	"github.com/staranto/deckthumb/internal/miniature"
)

// fileStamp is what a deck file is compared on between polls.
type fileStamp struct {
	modTime time.Time
	size    int64
}

// deckPoller reports when the deck file at path has changed since the last
// call.
type deckPoller struct {
	path string
	last fileStamp
}

func newDeckPoller(path string) (*deckPoller, error) {
	p := &deckPoller{path: path}
	if _, err := p.changed(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *deckPoller) changed() (bool, error) {
	fi, err := os.Stat(p.path)
	if err != nil {
		return false, fmt.Errorf("failed to stat deck: %w", err)
	}
	cur := fileStamp{modTime: fi.ModTime(), size: fi.Size()}
	if cur == p.last {
		return false, nil
	}
	p.last = cur
	return true, nil
}

// Watch keeps a strip of miniatures in sync with the deck file at path until
// ctx is done. Every reload is a new deck snapshot; unchanged slides come
// back from the renderer as the same artifact and are not rewritten.
func Watch(ctx context.Context, l *loop.Loop, strip *miniature.Strip, path string, interval time.Duration) error {
	poller, err := newDeckPoller(path)
	if err != nil {
		return err
	}
	d, err := deck.Load(path)
	if err != nil {
		return err
	}

	l.Post(func() { strip.Sync(d) })

	var poll loop.Task
	poll = func() {
		defer l.AfterFunc(interval, poll)

		changed, err := poller.changed()
		if err != nil {
			log.WithError(err).Warn("deck poll failed")
			return
		}
		if !changed {
			return
		}
		next, err := deck.Load(path)
		if err != nil {
			// Keep the miniatures of the last good deck.
			log.WithError(err).Warn("deck reload failed")
			return
		}
		log.WithField("slides", len(next.Slides)).Info("deck changed")
		strip.Sync(next)
	}
	l.AfterFunc(interval, poll)

	err = l.Run(ctx)
	l.Close()
	strip.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// WatchCommandAction is the action handler for the "watch" subcommand.
func WatchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path := cmd.Args().First()
	if path == "" {
		return errNoDeck
	}
	dir, err := OutDir(cmd)
	if err != nil {
		return err
	}

	interval := time.Duration(cmd.Int("interval")) * time.Millisecond
	window := time.Duration(cmd.Int("debounce")) * time.Millisecond

	l := loop.New(loop.WithPanicHandler(func(r any) {
		log.Errorf("miniature refresh failed: %v", r)
	}))
	strip := miniature.NewStrip(NewDeps(l, cmd.Int("width"), window), func(id deck.SlideID) display.Surface {
		return display.PNGFile{Path: display.PathFor(dir, id)}
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(Writer(cmd), "watching %s, writing miniatures to %s\n", path, dir)
	return Watch(ctx, l, strip, path, interval)
}

// WatchCommandBuilder constructs the cli.Command for "watch".
func WatchCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "keep slide miniatures up to date while a deck is edited",
		UsageText: `deckthumb watch DECK [--out DIR] [--interval MS] [--debounce MS]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "debounce",
				Usage: "milliseconds a deck must stay unchanged before miniatures refresh",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("watch.debounce", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("debounce", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 500,
				Validator: func(value int) error {
					return FlagValidators(value, PositiveValidator)
				},
			},
			&cli.IntFlag{
				Name:  "interval",
				Usage: "milliseconds between deck file polls",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("watch.interval", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 250,
				Validator: func(value int) error {
					return FlagValidators(value, PositiveValidator)
				},
			},
			NewOutFlag("watch", meta.Config.Source, "directory to write miniatures to", true),
			NewWidthFlag("watch", meta.Config.Source),
		},
		Action: WatchCommandAction,
	}
}
