// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains AWS-related helpers and adapters used by commands
// that interact with AWS resources: shared config loading, per-service
// client constructors, and the supported-region check.
package aws
