// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/meta"
)

const bashCompletionScript = `# bash completion for drctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_drctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "setup role guide sq tq clean completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"
  local aws="--region -r --profile"

    case "$cmd" in
    setup)
      local opts="$aws --create --no-guides --tldr"
            ;;
        role)
      local opts="$aws --verify --tldr"
            ;;
        guide)
            local opts="$aws --tldr"
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "trust s3 kinesis all" -- "$cur") )
                return 0
            fi
            ;;
        sq)
      local opts="$common $aws --schema"
            ;;
        tq)
      local opts="$common $aws --schema --name-contains"
            ;;
        clean)
            local opts="$aws --bucket --force --pick --job-name -j --tldr"
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "sims s3 images" -- "$cur") )
                return 0
            fi
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--region" || "$prev" == "-r" ]]; then
        COMPREPLY=( $(compgen -W "us-east-1 us-west-2 eu-west-1" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _drctl drctl
`

const zshCompletionScript = `#compdef drctl

_drctl() {
  local -a cmds
  cmds=(
    'setup:verify region and execution role, print setup guides'
    'role:show the resolved execution role'
    'guide:print an account setup guide'
    'sq:simulation job query'
    'tq:training job query'
    'clean:tear down simulation jobs, artifacts and local images'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local -a aws
  aws=(
  '(-r --region)'{-r,--region}'[region]:region:(us-east-1 us-west-2 eu-west-1)'
  '--profile[credentials profile]:profile'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'drctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    setup)
      _arguments -C \
        $aws \
        '--create[create the fallback execution role]' \
        '--no-guides[skip printing the setup guides]'
      ;;
    role)
      _arguments -C \
        $aws \
        '--verify[diff the live trust policy]'
      ;;
    guide)
      _arguments -C \
        $aws \
        '1: :((trust s3 kinesis all))'
      ;;
    sq)
      _arguments -C \
        $common \
        $aws \
        '--schema[dump schema]'
      ;;
    tq)
      _arguments -C \
        $common \
        $aws \
        '--schema[dump schema]' \
        '--name-contains[filter by name substring]:name'
      ;;
    clean)
      _arguments -C \
        $aws \
        '1: :((sims s3 images))' \
        '--bucket[bucket spec]:bucket' \
        '--force[skip the confirmation prompt]' \
        '--pick[interactively pick jobs]' \
        '(-j --job-name)'{-j,--job-name}'[training job label]:name'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _drctl drctl drctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: drctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "drctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
