// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"fmt"
	"strings"
)

// SupportedRegions lists the regions where the paired training and
// simulation services are both available. Everything else is rejected up
// front, before any role or cleanup call is made.
var SupportedRegions = []string{"us-east-1", "us-west-2", "eu-west-1"}

// ValidateRegion returns nil when region is on the supported list and a
// descriptive error otherwise.
func ValidateRegion(region string) error {
	for _, r := range SupportedRegions {
		if r == region {
			return nil
		}
	}
	return fmt.Errorf(
		"region %q is not supported for DeepRacer training; use one of %s",
		region, strings.Join(SupportedRegions, ", "))
}
