// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package docker removes local containers and images left behind by
// simulation runs. It shells out to the docker CLI rather than linking the
// daemon API; the CLI is already present wherever training ran.
package docker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/drctl/drctl/internal/log"
)

// Runner executes a command and returns its stdout. Swapped out in tests.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// PurgeResult counts what a purge removed.
type PurgeResult struct {
	Containers int
	Images     int
}

// Purge force-removes every container, then every image. Either list being
// empty is a no-op for that half, not an error.
func Purge(ctx context.Context, r Runner) (PurgeResult, error) {
	var result PurgeResult

	containers, err := ids(ctx, r, "ps", "-aq")
	if err != nil {
		return result, err
	}
	if len(containers) > 0 {
		args := append([]string{"rm", "-f"}, containers...)
		if _, err := r.Output(ctx, "docker", args...); err != nil {
			return result, fmt.Errorf("failed to remove containers: %w", err)
		}
		result.Containers = len(containers)
		log.Debugf("removed %d containers", len(containers))
	}

	images, err := ids(ctx, r, "images", "-q")
	if err != nil {
		return result, err
	}
	if len(images) > 0 {
		args := append([]string{"rmi", "-f"}, images...)
		if _, err := r.Output(ctx, "docker", args...); err != nil {
			return result, fmt.Errorf("failed to remove images: %w", err)
		}
		result.Images = len(images)
		log.Debugf("removed %d images", len(images))
	}

	return result, nil
}

// ids runs a docker listing command and returns its IDs, deduplicated.
// docker images -q repeats an ID once per tag.
func ids(ctx context.Context, r Runner, args ...string) ([]string, error) {
	out, err := r.Output(ctx, "docker", args...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var result []string
	for _, line := range strings.Split(string(out), "\n") {
		id := strings.TrimSpace(line)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result, nil
}
