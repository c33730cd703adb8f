// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	iamv2 "github.com/aws/aws-sdk-go-v2/service/iam"
	robomakerv2 "github.com/aws/aws-sdk-go-v2/service/robomaker"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithProfile verifies that WithProfile sets the profile option
// correctly.
func TestWithProfile(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		expected string
	}{
		{
			name:     "empty profile",
			profile:  "",
			expected: "",
		},
		{
			name:     "default profile",
			profile:  "default",
			expected: "default",
		},
		{
			name:     "custom profile",
			profile:  "deepracer",
			expected: "deepracer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			opt := WithProfile(tt.profile)
			opt(&opts)
			assert.Equal(t, tt.expected, opts.profile)
		})
	}
}

// TestWithRegion verifies that WithRegion sets the region option
// correctly.
func TestWithRegion(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		expected string
	}{
		{
			name:     "empty region",
			region:   "",
			expected: "",
		},
		{
			name:     "us-east-1",
			region:   "us-east-1",
			expected: "us-east-1",
		},
		{
			name:     "eu-west-1",
			region:   "eu-west-1",
			expected: "eu-west-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			opt := WithRegion(tt.region)
			opt(&opts)
			assert.Equal(t, tt.expected, opts.region)
		})
	}
}

// TestWithRetryer verifies that WithRetryer sets the retryer function
// option.
func TestWithRetryer(t *testing.T) {
	mockRetryer := func() awsv2.Retryer {
		return retry.NewStandard()
	}

	var opts options
	opt := WithRetryer(mockRetryer)
	opt(&opts)

	assert.NotNil(t, opts.retryer)
	result := opts.retryer()
	assert.NotNil(t, result)
}

// TestLoadAWSConfig_NoOptions verifies LoadAWSConfig loads successfully
// with no overrides, relying on defaults and environment.
func TestLoadAWSConfig_NoOptions(t *testing.T) {
	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx)

	// We expect this to succeed (no network required, uses default config
	// chain). The config should be valid even if no credentials are
	// available locally (config chain just won't load creds).
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
}

// TestLoadAWSConfig_WithRegion verifies that region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	ctx := context.Background()
	testRegion := "us-west-2"

	cfg, err := LoadAWSConfig(ctx, WithRegion(testRegion))

	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, testRegion, cfg.Region)
}

// TestLoadAWSConfig_OptionsOrder verifies that later options override
// earlier ones.
func TestLoadAWSConfig_OptionsOrder(t *testing.T) {
	region1 := "us-east-1"
	region2 := "eu-west-1"

	ctx := context.Background()
	cfg, err := LoadAWSConfig(
		ctx,
		WithRegion(region1),
		WithRegion(region2),
	)

	assert.NoError(t, err)
	assert.Equal(t, region2, cfg.Region)
}

// TestLoadAWSConfig_MultipleOptions verifies that multiple options are
// applied correctly in sequence.
func TestLoadAWSConfig_MultipleOptions(t *testing.T) {
	ctx := context.Background()
	testRegion := "eu-west-1"

	cfg, err := LoadAWSConfig(
		ctx,
		WithRegion(testRegion),
		WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard()
		}),
	)

	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, testRegion, cfg.Region)
}

// TestClientConstructors verifies each service constructor returns the
// expected client type from a valid config.
func TestClientConstructors(t *testing.T) {
	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx, WithRegion("us-east-1"))
	require.NoError(t, err)

	assert.IsType(t, &s3v2.Client{}, NewS3(cfg))
	assert.IsType(t, &iamv2.Client{}, NewIAM(cfg))
	assert.IsType(t, &stsv2.Client{}, NewSTS(cfg))
	assert.IsType(t, &robomakerv2.Client{}, NewRoboMaker(cfg))
	assert.NotNil(t, NewSageMaker(cfg))
}

// TestValidateRegion_Supported verifies that each supported region passes.
func TestValidateRegion_Supported(t *testing.T) {
	for _, region := range SupportedRegions {
		t.Run(region, func(t *testing.T) {
			assert.NoError(t, ValidateRegion(region))
		})
	}
}

// TestValidateRegion_Unsupported verifies that regions off the allow-list
// fail with a descriptive error.
func TestValidateRegion_Unsupported(t *testing.T) {
	tests := []string{
		"",
		"us-east-2",
		"ap-southeast-1",
		"eu-central-1",
		"US-EAST-1", // case matters
	}

	for _, region := range tests {
		t.Run("region "+region, func(t *testing.T) {
			err := ValidateRegion(region)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "not supported")
			assert.Contains(t, err.Error(), "us-east-1, us-west-2, eu-west-1")
		})
	}
}
