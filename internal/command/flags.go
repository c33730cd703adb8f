// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	forceFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "force",
		Usage:       "skip the confirmation prompt",
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "column padding for text output",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewRegionFlag constructs a cli.StringFlag for the "region" flag, optionally
// namespaced to a command and config file. params[1] is the config file. The
// flag validates against the supported-region list before any AWS call runs.
func NewRegionFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "region to use for all commands",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DRCTL_REGION"),
			cli.EnvVar("AWS_REGION"),
		),
		Value: "us-east-1",
		Validator: func(value string) error {
			return FlagValidators(value, RegionValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewProfileFlag constructs a cli.StringFlag for the "profile" flag,
// optionally namespaced to a command and config file. params[1] is the
// config file.
func NewProfileFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "profile",
		Usage: "credentials profile to use for all commands",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DRCTL_PROFILE"),
			cli.EnvVar("AWS_PROFILE"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewJobNameFlag constructs a cli.StringFlag for the "job-name" flag,
// optionally namespaced to a command and config file. The job name is a
// label carried through logs and output; it never selects resources.
func NewJobNameFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "job-name",
		Aliases: []string{"j"},
		Usage:   "training job label for logs and output",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DRCTL_JOB_NAME"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
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

// pathHas checks if the given executable is available on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
