// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package roles

import (
	"context"
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	iamv2 "github.com/aws/aws-sdk-go-v2/service/iam"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/drctl/drctl/internal/log"
	"github.com/drctl/drctl/internal/trust"
)

// FallbackRoleName is the role looked up when the execution role cannot be
// derived from the caller identity. This mirrors the console-created
// SageMaker execution role naming.
const FallbackRoleName = "sagemaker"

// Managed policies the execution role needs attached so that training can
// write artifacts and stream camera video.
const (
	PolicyS3FullAccess           = "arn:aws:iam::aws:policy/AmazonS3FullAccess"
	PolicyKinesisVideoFullAccess = "arn:aws:iam::aws:policy/AmazonKinesisVideoStreamsFullAccess"
)

// STSAPI is the subset of the STS client used by the resolver.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *stsv2.GetCallerIdentityInput, optFns ...func(*stsv2.Options)) (*stsv2.GetCallerIdentityOutput, error)
}

// IAMAPI is the subset of the IAM client used by the resolver.
type IAMAPI interface {
	GetRole(ctx context.Context, params *iamv2.GetRoleInput, optFns ...func(*iamv2.Options)) (*iamv2.GetRoleOutput, error)
	CreateRole(ctx context.Context, params *iamv2.CreateRoleInput, optFns ...func(*iamv2.Options)) (*iamv2.CreateRoleOutput, error)
	AttachRolePolicy(ctx context.Context, params *iamv2.AttachRolePolicyInput, optFns ...func(*iamv2.Options)) (*iamv2.AttachRolePolicyOutput, error)
}

// Resolver finds the execution role for the current credentials.
type Resolver struct {
	STS STSAPI
	IAM IAMAPI
}

// ExecutionRole returns the ARN of the execution role. The primary path
// derives the role from the caller identity (works when drctl itself runs
// under an assumed role, e.g. on a notebook instance). Any primary failure
// falls back to looking up the role named FallbackRoleName.
func (r *Resolver) ExecutionRole(ctx context.Context) (string, error) {
	arn, err := r.fromCallerIdentity(ctx)
	if err == nil {
		return arn, nil
	}
	log.Debugf("primary role resolution failed, using fallback: err=%v", err)

	out, err := r.IAM.GetRole(ctx, &iamv2.GetRoleInput{
		RoleName: awsv2.String(FallbackRoleName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve execution role %q: %w", FallbackRoleName, err)
	}
	return awsv2.ToString(out.Role.Arn), nil
}

// Ensure returns the fallback role's ARN, creating the role with the
// expected trust policy and attaching the required managed policies when it
// does not exist yet.
func (r *Resolver) Ensure(ctx context.Context) (string, error) {
	out, err := r.IAM.GetRole(ctx, &iamv2.GetRoleInput{
		RoleName: awsv2.String(FallbackRoleName),
	})
	if err == nil {
		return awsv2.ToString(out.Role.Arn), nil
	}
	log.Debugf("role %s not found, creating: err=%v", FallbackRoleName, err)

	doc, err := trust.Default().JSON()
	if err != nil {
		return "", fmt.Errorf("failed to render trust policy: %w", err)
	}

	created, err := r.IAM.CreateRole(ctx, &iamv2.CreateRoleInput{
		RoleName:                 awsv2.String(FallbackRoleName),
		AssumeRolePolicyDocument: awsv2.String(string(doc)),
		Description:              awsv2.String("Execution role for DeepRacer training and simulation"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role %q: %w", FallbackRoleName, err)
	}

	for _, policy := range []string{PolicyS3FullAccess, PolicyKinesisVideoFullAccess} {
		if _, err := r.IAM.AttachRolePolicy(ctx, &iamv2.AttachRolePolicyInput{
			RoleName:  awsv2.String(FallbackRoleName),
			PolicyArn: awsv2.String(policy),
		}); err != nil {
			return "", fmt.Errorf("failed to attach %s: %w", policy, err)
		}
	}

	return awsv2.ToString(created.Role.Arn), nil
}

// fromCallerIdentity resolves the role backing the current credentials.
// Only assumed-role identities qualify; plain IAM users have no execution
// role to derive.
func (r *Resolver) fromCallerIdentity(ctx context.Context) (string, error) {
	ident, err := r.STS.GetCallerIdentity(ctx, &stsv2.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}

	name, err := assumedRoleName(awsv2.ToString(ident.Arn))
	if err != nil {
		return "", err
	}

	out, err := r.IAM.GetRole(ctx, &iamv2.GetRoleInput{
		RoleName: awsv2.String(name),
	})
	if err != nil {
		return "", err
	}
	return awsv2.ToString(out.Role.Arn), nil
}

// assumedRoleName extracts the role name from an assumed-role caller ARN of
// the form arn:aws:sts::123456789012:assumed-role/RoleName/SessionName.
func assumedRoleName(callerArn string) (string, error) {
	parts := strings.Split(callerArn, ":")
	if len(parts) != 6 {
		return "", fmt.Errorf("unexpected caller arn: %s", callerArn)
	}

	resource := strings.Split(parts[5], "/")
	if resource[0] != "assumed-role" || len(resource) < 2 {
		return "", fmt.Errorf("caller identity %s is not an assumed role", callerArn)
	}
	return resource[1], nil
}
