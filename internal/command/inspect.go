// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/deckthumb/internal/config"
	"github.com/staranto/deckthumb/internal/deck"
	"github.com/staranto/deckthumb/internal/meta"
	"github.com/staranto/deckthumb/internal/render"
)

var inspectHeaders = []string{"#", "ID", "TITLE", "ELEMENTS", "RENDER", "COMMON"}

// InspectRows builds one row per slide. With sizes set, each slide is
// rendered and the encoded PNG size is appended.
func InspectRows(d *deck.Deck, titleWidth int, sizes *render.Canvas) [][]string {
	rows := make([][]string, 0, len(d.Slides))
	for i, s := range d.Slides {
		title := s.Title
		if r := []rune(title); titleWidth > 0 && len(r) > titleWidth {
			title = string(r[:titleWidth]) + "…"
		}
		row := []string{
			strconv.Itoa(i + 1),
			string(s.ID),
			title,
			strconv.Itoa(len(s.Elements)),
			strconv.FormatBool(s.ShouldRender),
			strconv.FormatBool(s.ShouldRenderWithCommonSlide),
		}
		if sizes != nil {
			size := "-"
			if b, err := sizes.RenderSlide(d, s.ID).PNG(); err == nil {
				size = humanize.Bytes(uint64(len(b)))
			} else {
				log.WithError(err).WithField("slide", s.ID).Warn("failed to encode miniature")
			}
			row = append(row, size)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteInspect prints the deck summary and slide rows, as a bordered table
// when pretty is set and tab-separated otherwise.
func WriteInspect(w io.Writer, d *deck.Deck, headers []string, rows [][]string, pretty bool) {
	fmt.Fprintf(w, "deck %s: %vx%v, %s\n", d.ID, d.PrintableArea.Width, d.PrintableArea.Height, deck.Fit(d.PrintableArea))

	if !pretty {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, r := range rows {
			fmt.Fprintln(w, strings.Join(r, "\t"))
		}
		return
	}

	border := lipgloss.RoundedBorder()
	if b, _ := config.GetString("inspect.border", "rounded"); b == "normal" {
		border = lipgloss.NormalBorder()
	}
	t := table.New().
		Border(border).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

// InspectCommandAction is the action handler for the "inspect" subcommand.
func InspectCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	_, d, err := LoadDeckArg(cmd)
	if err != nil {
		return err
	}

	headers := inspectHeaders
	var sizes *render.Canvas
	if cmd.Bool("sizes") {
		sizes = render.NewCanvas(cmd.Int("width"))
		headers = append(append([]string(nil), inspectHeaders...), "PNG")
	}

	titleWidth, _ := config.GetInt("inspect.title_width", 32)
	rows := InspectRows(d, titleWidth, sizes)

	w := Writer(cmd)
	pretty := w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	WriteInspect(w, d, headers, rows, pretty)
	return nil
}

// InspectCommandBuilder constructs the cli.Command for "inspect".
func InspectCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "list the slides of a deck",
		UsageText: `deckthumb inspect DECK [--sizes]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sizes",
				Usage: "render every slide and report its PNG size",
			},
			NewWidthFlag("inspect", meta.Config.Source),
		},
		Action: InspectCommandAction,
	}
}
