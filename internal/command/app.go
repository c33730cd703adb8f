// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/config"
	"github.com/drctl/drctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the drctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// allow short if-style local cfg; no actual outer cfg
	cfg2, _ := config.Load(ns) //nolint
	meta := meta.Meta{
		Args:        args,
		Config:      cfg2,
		Context:     ctx,
		JobSpec:     loadJobSpec(),
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "drctl",
		Usage: "DeepRacer Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "drctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		setupCommandBuilder(meta),
		roleCommandBuilder(meta),
		guideCommandBuilder(meta),
		sqCommandBuilder(meta),
		tqCommandBuilder(meta),
		cleanCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// loadJobSpec pulls the training job label and artifact location from the
// config file. The label defaults to "None", which is accepted as-is and
// never triggers any resource selection.
func loadJobSpec() meta.JobSpec {
	jobName, _ := config.GetString("job-name", "None")
	bucket, _ := config.GetString("bucket", "")
	prefix, _ := config.GetString("prefix", "")

	return meta.JobSpec{
		JobName: jobName,
		Bucket:  bucket,
		Prefix:  prefix,
	}
}
