// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/deckthumb/internal/render"
)

// NewWidthFlag constructs the "width" flag, namespaced to a command and the
// config file at path.
func NewWidthFlag(ns string, path string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "width",
		Usage:   "width in pixels of the miniature box",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DECKTHUMB_WIDTH"),
			yaml.YAML(ns+".width", altsrc.StringSourcer(path)),
			yaml.YAML("thumbnail.width", altsrc.StringSourcer(path)),
		),
		Value: render.DefaultWidth,
		Validator: func(value int) error {
			return FlagValidators(value, PositiveValidator)
		},
	}
}

// NewOutFlag constructs the "out" flag sourced from the namespaced config key
// and, when global is set, the top-level "out" key too.
func NewOutFlag(ns string, path string, usage string, global bool) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   usage,
		Sources: cli.NewValueSourceChain(),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}
	if !global {
		flag.Sources.Chain = append(flag.Sources.Chain, yaml.YAML(ns+".out", altsrc.StringSourcer(path)))
		return flag
	}
	return NameSpacedValueChainFlagFromConfigFile(ns, path, flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
