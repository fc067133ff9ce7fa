// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/deckthumb/internal/config"
	"github.com/staranto/deckthumb/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the subcommand
	// and also represents the namespace key to be used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a
	// flag.
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		config.Config.Namespace = args[1]
	}

	meta := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "deckthumb",
		Usage: "slide miniature renderer",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "deckthumb version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CompletionCommandBuilder(app, meta),
		InspectCommandBuilder(app, meta),
		RenderCommandBuilder(app, meta),
		WatchCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
