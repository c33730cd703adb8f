// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	iamv2 "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/aws"
	"github.com/drctl/drctl/internal/meta"
	"github.com/drctl/drctl/internal/roles"
	"github.com/drctl/drctl/internal/trust"
)

// roleCommandAction is the action handler for the "role" subcommand. It
// resolves and prints the execution role ARN. With --verify it also diffs
// the fallback role's live trust policy against the expected document.
func roleCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "role") {
		return nil
	}

	cfg, err := LoadCommandAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}

	arn, err := ResolveExecutionRole(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	fmt.Println(arn)

	if !cmd.Bool("verify") {
		return nil
	}

	return verifyTrustPolicy(ctx, aws.NewIAM(cfg))
}

// verifyTrustPolicy fetches the fallback role's trust policy and reports any
// drift from the expected document.
func verifyTrustPolicy(ctx context.Context, client *iamv2.Client) error {
	out, err := client.GetRole(ctx, &iamv2.GetRoleInput{
		RoleName: awsv2.String(roles.FallbackRoleName),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch role %q: %w", roles.FallbackRoleName, err)
	}

	// IAM returns the trust policy URL-encoded.
	current, err := trust.DecodePolicy(awsv2.ToString(out.Role.AssumeRolePolicyDocument))
	if err != nil {
		return err
	}

	want, err := trust.Default().JSON()
	if err != nil {
		return err
	}

	diff, drifted, err := trust.Diff(current, want)
	if err != nil {
		return err
	}

	if !drifted {
		fmt.Println("trust policy matches the expected document")
		return nil
	}

	fmt.Println("trust policy has drifted:")
	fmt.Println(diff)
	return nil
}

// roleCommandBuilder constructs the cli.Command for "role", wiring metadata,
// flags, and action handlers.
func roleCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "role",
		Usage:     "show the resolved execution role",
		UsageText: "drctl role [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verify",
				Usage:       "diff the live trust policy against the expected document",
				HideDefault: true,
			},
			tldrFlag,
			NewRegionFlag("role", meta.Config.Source),
			NewProfileFlag("role", meta.Config.Source),
		},
		Action: roleCommandAction,
	}
}
