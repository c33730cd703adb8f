// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	smtypes "github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/aws"
	"github.com/drctl/drctl/internal/meta"
)

// tqDefaultAttrs specifies the default attributes displayed for training
// jobs in the "tq" command output.
var tqDefaultAttrs = []string{"TrainingJobName", "TrainingJobStatus", "TrainingJobArn"}

// tqCommandAction is the action handler for the "tq" subcommand. It lists
// SageMaker training jobs in the selected region.
func tqCommandAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := LoadCommandAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}
	client := aws.NewSageMaker(cfg)

	fetcher := func(ctx context.Context, cmd *cli.Command) ([]smtypes.TrainingJobSummary, error) {
		input := &sagemaker.ListTrainingJobsInput{
			MaxResults: awsv2.Int32(100),
		}
		if contains := cmd.String("name-contains"); contains != "" {
			input.NameContains = awsv2.String(contains)
		}

		return PaginateWithToken(ctx,
			func(ctx context.Context, token *string) ([]smtypes.TrainingJobSummary, *string, error) {
				input.NextToken = token
				out, err := client.ListTrainingJobs(ctx, input)
				if err != nil {
					return nil, nil, err
				}
				return out.TrainingJobSummaries, out.NextToken, nil
			})
	}

	return NewQueryActionRunner(
		"tq",
		reflect.TypeOf(smtypes.TrainingJobSummary{}),
		tqDefaultAttrs,
		fetcher,
	).Run(ctx, cmd)
}

// tqCommandBuilder constructs the cli.Command for "tq", wiring metadata,
// flags, and action handlers.
func tqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "tq",
		Usage:     "training job query",
		UsageText: "drctl tq [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name-contains",
				Usage: "only return training jobs whose name contains this string",
			},
			NewRegionFlag("tq", meta.Config.Source),
			NewProfileFlag("tq", meta.Config.Source),
		},
		Action: tqCommandAction,
		Meta:   meta,
	}).Build()
}
