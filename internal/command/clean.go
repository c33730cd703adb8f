// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/aws"
	"github.com/drctl/drctl/internal/docker"
	"github.com/drctl/drctl/internal/engine"
	"github.com/drctl/drctl/internal/meta"
	"github.com/drctl/drctl/internal/util"
)

// newEngine builds a DeepRacer engine from the command flags and meta. The
// bucket spec flag overrides the configured bucket and prefix.
func newEngine(ctx context.Context, cmd *cli.Command) (*engine.Engine, error) {
	cfg, err := LoadCommandAWSConfig(ctx, cmd)
	if err != nil {
		return nil, err
	}

	m := GetMeta(cmd)
	bucket, prefix := m.Bucket, m.Prefix
	if spec := cmd.String("bucket"); spec != "" {
		bucket, prefix, err = util.ParseBucketSpec(spec)
		if err != nil {
			return nil, err
		}
	}

	jobName := m.JobName
	if name := cmd.String("job-name"); name != "" {
		jobName = name
	}

	eng := engine.New(engine.Config{
		JobName: jobName,
		Bucket:  bucket,
		Prefix:  prefix,
	}, aws.NewRoboMaker(cfg), aws.NewS3(cfg))

	log.Debugf("engine run: id=%s job=%s", eng.RunID(), jobName)

	return eng, nil
}

// cleanSimsAction cancels simulation jobs. By default every non-terminal job
// is cancelled; with --pick an interactive selector narrows the set.
func cleanSimsAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "clean") {
		return nil
	}

	eng, err := newEngine(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("pick") {
		jobs, err := eng.ListSimulationJobs(ctx)
		if err != nil {
			return err
		}
		arns := SelectSimulationJobs(jobs)
		if len(arns) == 0 {
			fmt.Println("nothing selected")
			return nil
		}
		n, err := eng.CancelSimulations(ctx, arns)
		if err != nil {
			return err
		}
		fmt.Printf("cancelled %d simulation job(s)\n", n)
		return nil
	}

	if !cmd.Bool("force") && !ConfirmDestructive("cancel ALL active simulation jobs?") {
		return nil
	}

	n, err := eng.DeleteAllSimulations(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("cancelled %d simulation job(s)\n", n)

	return nil
}

// cleanS3Action deletes simulation artifacts under the configured bucket and
// prefix.
func cleanS3Action(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "clean") {
		return nil
	}

	eng, err := newEngine(ctx, cmd)
	if err != nil {
		return err
	}

	target := eng.Config().Bucket
	if p := eng.Config().Prefix; p != "" {
		target = target + "/" + p
	}
	if !cmd.Bool("force") && !ConfirmDestructive(fmt.Sprintf("delete all objects under s3://%s?", target)) {
		return nil
	}

	n, err := eng.DeleteS3SimulationResources(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d object(s)\n", n)

	return nil
}

// cleanImagesAction removes all local docker containers and images.
func cleanImagesAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "clean") {
		return nil
	}

	if !cmd.Bool("force") && !ConfirmDestructive("remove ALL local docker containers and images?") {
		return nil
	}

	result, err := docker.Purge(ctx, docker.ExecRunner{})
	if err != nil {
		return err
	}
	fmt.Printf("removed %d container(s) and %d image(s)\n", result.Containers, result.Images)

	return nil
}

// cleanCommandBuilder constructs the cli.Command for "clean" and its
// subcommands.
func cleanCommandBuilder(meta meta.Meta) *cli.Command {
	awsFlags := func(ns string) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:  "bucket",
				Usage: "bucket spec (bucket or bucket::prefix) holding simulation artifacts",
			},
			forceFlag,
			tldrFlag,
			NewRegionFlag(ns, meta.Config.Source),
			NewProfileFlag(ns, meta.Config.Source),
			NewJobNameFlag(ns, meta.Config.Source),
		}
	}

	return &cli.Command{
		Name:      "clean",
		Usage:     "tear down simulation jobs, artifacts and local images",
		UsageText: "drctl clean <sims|s3|images> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "sims",
				Usage:     "cancel active simulation jobs",
				UsageText: "drctl clean sims [options]",
				Metadata: map[string]any{
					"meta": meta,
				},
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:        "pick",
						Usage:       "interactively pick the jobs to cancel",
						HideDefault: true,
					},
				}, awsFlags("clean")...),
				Action: cleanSimsAction,
			},
			{
				Name:      "s3",
				Usage:     "delete simulation artifacts from S3",
				UsageText: "drctl clean s3 [options]",
				Metadata: map[string]any{
					"meta": meta,
				},
				Flags:  awsFlags("clean"),
				Action: cleanS3Action,
			},
			{
				Name:      "images",
				Usage:     "remove all local docker containers and images",
				UsageText: "drctl clean images [options]",
				Metadata: map[string]any{
					"meta": meta,
				},
				Flags:  []cli.Flag{forceFlag, tldrFlag},
				Action: cleanImagesAction,
			},
		},
	}
}
