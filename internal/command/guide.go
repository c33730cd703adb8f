// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/guide"
	"github.com/drctl/drctl/internal/meta"
)

// guideCommandAction is the action handler for the "guide" subcommand. It
// resolves the execution role and prints the requested setup guide with the
// role ARN filled in.
func guideCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "guide") {
		return nil
	}

	topic := cmd.Args().First()
	if topic == "" {
		topic = "all"
	}

	cfg, err := LoadCommandAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}

	arn, err := ResolveExecutionRole(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	switch topic {
	case "trust":
		fmt.Println(guide.TrustPolicy(arn))
	case "s3":
		fmt.Println(guide.S3Access(arn))
	case "kinesis":
		fmt.Println(guide.KinesisAccess(arn))
	case "all":
		fmt.Println(guide.All(arn))
	default:
		return fmt.Errorf("unknown guide %q: must be one of trust, s3, kinesis, all", topic)
	}

	return nil
}

// guideCommandBuilder constructs the cli.Command for "guide", wiring
// metadata, flags, and action handlers.
func guideCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "guide",
		Usage:     "print an account setup guide",
		UsageText: "drctl guide [trust|s3|kinesis|all] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			tldrFlag,
			NewRegionFlag("guide", meta.Config.Source),
			NewProfileFlag("guide", meta.Config.Source),
		},
		Action: guideCommandAction,
	}
}
