// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/aws"
	"github.com/drctl/drctl/internal/guide"
	"github.com/drctl/drctl/internal/meta"
	"github.com/drctl/drctl/internal/roles"
)

// setupCommandAction is the action handler for the "setup" subcommand. It
// validates the region, resolves (or creates) the execution role, and prints
// the account setup guides with the resolved role ARN filled in.
func setupCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "setup") {
		return nil
	}

	cfg, err := LoadCommandAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}

	var arn string
	if cmd.Bool("create") {
		resolver := &roles.Resolver{
			STS: aws.NewSTS(cfg),
			IAM: aws.NewIAM(cfg),
		}
		arn, err = resolver.Ensure(ctx)
	} else {
		arn, err = ResolveExecutionRole(ctx, cmd, cfg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("region: %s\n", cmd.String("region"))
	fmt.Printf("execution role: %s\n", arn)

	if cmd.Bool("no-guides") {
		return nil
	}

	fmt.Println()
	fmt.Println(guide.All(arn))

	return nil
}

// setupCommandBuilder constructs the cli.Command for "setup", wiring
// metadata, flags, and action handlers.
func setupCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "setup",
		Usage:     "verify the region and execution role, then print the setup guides",
		UsageText: "drctl setup [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "create",
				Usage:       "create the fallback execution role if it does not exist",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "no-guides",
				Usage:       "skip printing the setup guides",
				HideDefault: true,
			},
			tldrFlag,
			NewRegionFlag("setup", meta.Config.Source),
			NewProfileFlag("setup", meta.Config.Source),
		},
		Action: setupCommandAction,
	}
}
