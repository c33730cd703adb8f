// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"syscall"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/drctl/drctl/internal/attrs"
	"github.com/drctl/drctl/internal/aws"
	"github.com/drctl/drctl/internal/cacheutil"
	"github.com/drctl/drctl/internal/log"
	"github.com/drctl/drctl/internal/meta"
	"github.com/drctl/drctl/internal/output"
	"github.com/drctl/drctl/internal/roles"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// ConfirmDestructive prompts for a single y/N keypress on the terminal and
// returns whether the user confirmed. A non-TTY stdin declines, so piped
// invocations never destroy anything by accident.
func ConfirmDestructive(prompt string) bool {
	if !term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal; use --force to proceed")
		return false
	}

	fmt.Printf("%s [y/N] ", prompt)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return false
	}
	defer term.Restore(int(syscall.Stdin), oldState) //nolint:errcheck

	var buf [1]byte
	n, err := syscall.Read(syscall.Stdin, buf[:])
	fmt.Println()
	if err != nil || n == 0 {
		return false
	}

	return buf[0] == 'y' || buf[0] == 'Y'
}

// DumpSchemaIfRequested writes the attribute schema for the provided type to
// stdout when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t, nil)
		return true
	}
	return false
}

// EmitJSONSlice marshals a slice as JSON and passes it to the common output
// routine.
func EmitJSONSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	output.SliceDiceSpit(raw, al, cmd, "", os.Stdout, nil)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadCommandAWSConfig validates the region selection and loads the shared
// AWS config honoring the --region and --profile flags. The region check
// runs here as well as in the flag validator so values arriving through the
// config file chain cannot slip past it.
func LoadCommandAWSConfig(ctx context.Context, cmd *cli.Command) (awsv2.Config, error) {
	region := cmd.String("region")
	if err := aws.ValidateRegion(region); err != nil {
		return awsv2.Config{}, err
	}

	return aws.LoadAWSConfig(ctx,
		aws.WithRegion(region),
		aws.WithProfile(cmd.String("profile")),
	)
}

// PaginateWithToken[T] is a generic paginator that drives token-based AWS
// list calls. The fetcher is invoked with the current continuation token and
// must return the page items and the next token (nil or empty when done).
func PaginateWithToken[T any](
	ctx context.Context,
	fetcher func(context.Context, *string) ([]T, *string, error),
) ([]T, error) {
	var results []T
	var token *string

	for {
		items, next, err := fetcher(ctx, token)
		if err != nil {
			return nil, err
		}

		results = append(results, items...)

		if next == nil || *next == "" {
			break
		}
		token = next
	}

	return results, nil
}

// ResolveExecutionRole returns the execution role ARN for the current
// credentials, consulting the on-disk cache first. The cache key includes
// region and profile so switching either never serves a stale ARN.
func ResolveExecutionRole(ctx context.Context, cmd *cli.Command, cfg awsv2.Config) (string, error) {
	cacheKey := fmt.Sprintf("execution-role::%s::%s", cmd.String("region"), cmd.String("profile"))

	if entry, ok := cacheutil.Read([]string{"roles"}, cacheKey); ok {
		return string(entry.Data), nil
	}

	resolver := &roles.Resolver{
		STS: aws.NewSTS(cfg),
		IAM: aws.NewIAM(cfg),
	}

	arn, err := resolver.ExecutionRole(ctx)
	if err != nil {
		return "", err
	}

	if err := cacheutil.Write([]string{"roles"}, cacheKey, []byte(arn)); err != nil {
		log.Debugf("role cache write failed: err=%v", err)
	}

	return arn, nil
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr drctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "drctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
