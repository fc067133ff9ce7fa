// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/deckthumb/internal/meta"
)

const bashCompletionScript = `# bash completion for deckthumb
_deckthumb()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "inspect render watch completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    case "$cmd" in
        inspect)
            local opts="--sizes --width"
            ;;
        render)
            local opts="--slide -s --out -o --width"
            ;;
        watch)
            local opts="--out -o --interval --debounce --width"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Deck files and output paths.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _deckthumb deckthumb
`

const zshCompletionScript = `#compdef deckthumb

_deckthumb() {
  local -a cmds
  cmds=(
    'inspect:list the slides of a deck'
    'render:render one slide miniature to a PNG file'
    'watch:keep slide miniatures up to date while a deck is edited'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'deckthumb commands' cmds
    return
  fi

  case $words[2] in
    inspect)
      _arguments '--sizes[report PNG sizes]' '--width[miniature width]:pixels' '*:deck:_files'
      ;;
    render)
      _arguments '(-s --slide)'{-s,--slide}'[slide id]:id' '(-o --out)'{-o,--out}'[PNG file]:file:_files' '--width[miniature width]:pixels' '*:deck:_files'
      ;;
    watch)
      _arguments '(-o --out)'{-o,--out}'[output directory]:dir:_directories' '--interval[poll interval ms]:ms' '--debounce[debounce ms]:ms' '--width[miniature width]:pixels' '*:deck:_files'
      ;;
    completion)
      _arguments '1:shell:(bash zsh)'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _deckthumb deckthumb
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(Writer(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(Writer(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(Writer(cmd), zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(Writer(cmd), bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: deckthumb completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "deckthumb completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
