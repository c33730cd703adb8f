// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"strings"
)

// ParseBucketSpec parses a bucket spec string and returns the bucket name
// and any optional key prefix. The spec form is bucket or bucket::prefix.
// It returns an error if the bucket portion is empty.
func ParseBucketSpec(spec string) (string, string, error) {

	if spec == "" {
		return "", "", os.ErrInvalid
	}

	var bucket, prefix string

	// First, split the spec to see if there is a ::prefix component.
	parts := strings.Split(spec, "::")
	if len(parts) > 1 {
		prefix = parts[1]
	}

	bucket = strings.TrimSpace(parts[0])
	if bucket == "" {
		return "", "", os.ErrInvalid
	}

	// Normalize an s3:// scheme so specs can be pasted from console URLs.
	bucket = strings.TrimPrefix(bucket, "s3://")
	bucket = strings.TrimSuffix(bucket, "/")

	return bucket, prefix, nil
}
