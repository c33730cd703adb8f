// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package engine wraps the simulation and storage cleanup operations behind
// a single façade. Construction is side-effect free; nothing talks to AWS
// until one of the operations is invoked.
package engine

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	robomakerv2 "github.com/aws/aws-sdk-go-v2/service/robomaker"
	rmtypes "github.com/aws/aws-sdk-go-v2/service/robomaker/types"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/drctl/drctl/internal/log"
)

// deleteBatchMax is the S3 DeleteObjects per-request limit.
const deleteBatchMax = 1000

// RoboMakerAPI is the subset of the RoboMaker client the engine uses.
type RoboMakerAPI interface {
	ListSimulationJobs(ctx context.Context, params *robomakerv2.ListSimulationJobsInput, optFns ...func(*robomakerv2.Options)) (*robomakerv2.ListSimulationJobsOutput, error)
	CancelSimulationJob(ctx context.Context, params *robomakerv2.CancelSimulationJobInput, optFns ...func(*robomakerv2.Options)) (*robomakerv2.CancelSimulationJobOutput, error)
}

// S3API is the subset of the S3 client the engine uses.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3v2.DeleteObjectsInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteObjectsOutput, error)
}

// Config carries the identifiers the engine scopes its work to. JobName is
// a label only; it never selects what gets cleaned up, so any value
// (including the literal "None" a config template may leave behind) is
// accepted as-is.
type Config struct {
	JobName string
	Bucket  string
	Prefix  string
}

// Engine is the cleanup façade. Clients are injected so commands and tests
// decide how they are built.
type Engine struct {
	cfg   Config
	rm    RoboMakerAPI
	s3    S3API
	runID string
}

// New builds an Engine. It validates nothing and calls nothing; bad config
// surfaces when an operation runs.
func New(cfg Config, rm RoboMakerAPI, s3c S3API) *Engine {
	return &Engine{
		cfg:   cfg,
		rm:    rm,
		s3:    s3c,
		runID: uuid.NewString(),
	}
}

// RunID identifies this engine instance in logs, so overlapping cleanup
// runs can be told apart.
func (e *Engine) RunID() string {
	return e.runID
}

// Config returns the config the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// ListSimulationJobs returns every simulation job in the region, following
// pagination.
func (e *Engine) ListSimulationJobs(ctx context.Context) ([]rmtypes.SimulationJobSummary, error) {
	var jobs []rmtypes.SimulationJobSummary
	var token *string

	for {
		out, err := e.rm.ListSimulationJobs(ctx, &robomakerv2.ListSimulationJobsInput{
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list simulation jobs: %w", err)
		}

		jobs = append(jobs, out.SimulationJobSummaries...)

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		token = out.NextToken
	}

	return jobs, nil
}

// terminal reports whether a job is already finished and needs no cancel.
func terminal(status rmtypes.SimulationJobStatus) bool {
	switch status {
	case rmtypes.SimulationJobStatusCompleted,
		rmtypes.SimulationJobStatusFailed,
		rmtypes.SimulationJobStatusCanceled:
		return true
	}
	return false
}

// DeleteAllSimulations cancels every simulation job that is not already in
// a terminal state and returns how many were cancelled. Jobs that finished
// on their own are left untouched.
func (e *Engine) DeleteAllSimulations(ctx context.Context) (int, error) {
	jobs, err := e.ListSimulationJobs(ctx)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, job := range jobs {
		if terminal(job.Status) {
			log.Tracef("run=%s skipping %s status=%s",
				e.runID, awsv2.ToString(job.Arn), job.Status)
			continue
		}

		if _, err := e.rm.CancelSimulationJob(ctx, &robomakerv2.CancelSimulationJobInput{
			Job: job.Arn,
		}); err != nil {
			return cancelled, fmt.Errorf("failed to cancel %s: %w",
				awsv2.ToString(job.Arn), err)
		}

		log.Debugf("run=%s cancelled %s", e.runID, awsv2.ToString(job.Arn))
		cancelled++
	}

	return cancelled, nil
}

// CancelSimulations cancels the given jobs by ARN and returns how many
// cancel calls succeeded before any failure.
func (e *Engine) CancelSimulations(ctx context.Context, arns []string) (int, error) {
	cancelled := 0
	for _, arn := range arns {
		if _, err := e.rm.CancelSimulationJob(ctx, &robomakerv2.CancelSimulationJobInput{
			Job: awsv2.String(arn),
		}); err != nil {
			return cancelled, fmt.Errorf("failed to cancel %s: %w", arn, err)
		}
		log.Debugf("run=%s cancelled %s", e.runID, arn)
		cancelled++
	}
	return cancelled, nil
}

// DeleteS3SimulationResources deletes every object under the configured
// bucket/prefix in batches and returns how many objects were removed. An
// empty prefix clears the whole bucket, so callers confirm first.
func (e *Engine) DeleteS3SimulationResources(ctx context.Context) (int, error) {
	if e.cfg.Bucket == "" {
		return 0, fmt.Errorf("no bucket configured")
	}

	var prefix *string
	if e.cfg.Prefix != "" {
		prefix = awsv2.String(e.cfg.Prefix)
	}

	deleted := 0
	var token *string

	for {
		out, err := e.s3.ListObjectsV2(ctx, &s3v2.ListObjectsV2Input{
			Bucket:            awsv2.String(e.cfg.Bucket),
			Prefix:            prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to list s3://%s/%s: %w",
				e.cfg.Bucket, e.cfg.Prefix, err)
		}

		for start := 0; start < len(out.Contents); start += deleteBatchMax {
			end := min(start+deleteBatchMax, len(out.Contents))

			batch := make([]s3types.ObjectIdentifier, 0, end-start)
			for _, obj := range out.Contents[start:end] {
				batch = append(batch, s3types.ObjectIdentifier{Key: obj.Key})
			}

			if _, err := e.s3.DeleteObjects(ctx, &s3v2.DeleteObjectsInput{
				Bucket: awsv2.String(e.cfg.Bucket),
				Delete: &s3types.Delete{
					Objects: batch,
					Quiet:   awsv2.Bool(true),
				},
			}); err != nil {
				return deleted, fmt.Errorf("failed to delete batch from s3://%s: %w",
					e.cfg.Bucket, err)
			}

			deleted += len(batch)
			log.Tracef("run=%s deleted batch of %d from s3://%s/%s",
				e.runID, len(batch), e.cfg.Bucket, e.cfg.Prefix)
		}

		if !awsv2.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	log.Debugf("run=%s deleted %d objects from s3://%s/%s",
		e.runID, deleted, e.cfg.Bucket, e.cfg.Prefix)

	return deleted, nil
}
