// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/drctl/drctl/internal/config"
)

// JobSpec holds the resolved training job label and optional artifact
// location override used by the cleanup commands. JobName is a label only;
// it never names the actual simulation jobs.
type JobSpec struct {
	JobName string
	Bucket  string
	Prefix  string
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the resolved job specification, and the
// starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	JobSpec
	StartingDir string
}
