// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/drctl/drctl/internal/aws"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// RegionValidator rejects regions where the paired training and simulation
// services are not both available.
func RegionValidator(value any) error {
	region, ok := value.(string)
	if !ok {
		return fmt.Errorf("region must be a string")
	}
	return aws.ValidateRegion(region)
}
