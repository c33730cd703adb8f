// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/robomaker"
	rmtypes "github.com/aws/aws-sdk-go-v2/service/robomaker/types"
	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/aws"
	"github.com/drctl/drctl/internal/filters"
	"github.com/drctl/drctl/internal/meta"
)

// sqDefaultAttrs specifies the default attributes displayed for simulation
// jobs in the "sq" command output.
var sqDefaultAttrs = []string{"Name", "Status", "Arn"}

// sqCommandAction is the action handler for the "sq" subcommand. It lists
// RoboMaker simulation jobs in the selected region.
func sqCommandAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := LoadCommandAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}
	client := aws.NewRoboMaker(cfg)

	serverFilters := sqServerSideFilters(cmd.String("filter"))

	fetcher := func(ctx context.Context, _ *cli.Command) ([]rmtypes.SimulationJobSummary, error) {
		return PaginateWithToken(ctx,
			func(ctx context.Context, token *string) ([]rmtypes.SimulationJobSummary, *string, error) {
				out, err := client.ListSimulationJobs(ctx, &robomaker.ListSimulationJobsInput{
					MaxResults: awsv2.Int32(100),
					NextToken:  token,
					Filters:    serverFilters,
				})
				if err != nil {
					return nil, nil, err
				}
				return out.SimulationJobSummaries, out.NextToken, nil
			})
	}

	return NewQueryActionRunner(
		"sq",
		reflect.TypeOf(rmtypes.SimulationJobSummary{}),
		sqDefaultAttrs,
		fetcher,
	).Run(ctx, cmd)
}

// sqServerSideFilters converts server-side entries of the --filter flag into
// RoboMaker list filters. ListSimulationJobs supports status,
// simulationApplicationName and robotApplicationName filter names.
func sqServerSideFilters(spec string) []rmtypes.Filter {
	filterList := filters.BuildFilters(spec)

	var out []rmtypes.Filter
	for _, f := range filterList {
		// We only care about server-side filters.
		if !f.ServerSide {
			continue
		}
		switch f.Key {
		case "status", "simulationApplicationName", "robotApplicationName":
			out = append(out, rmtypes.Filter{
				Name:   awsv2.String(f.Key),
				Values: []string{f.Value},
			})
		default:
			log.Debugf("unsupported server-side filter key: %s", f.Key)
		}
	}

	return out
}

// sqCommandBuilder constructs the cli.Command for "sq", wiring metadata,
// flags, and action handlers.
func sqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "sq",
		Usage:     "simulation job query",
		UsageText: "drctl sq [options]",
		Flags: []cli.Flag{
			NewRegionFlag("sq", meta.Config.Source),
			NewProfileFlag("sq", meta.Config.Source),
		},
		Action: sqCommandAction,
		Meta:   meta,
	}).Build()
}
