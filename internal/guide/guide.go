// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package guide renders the Markdown walk-throughs shown by the guide
// command. Each generator is a pure function of the resolved execution role
// ARN so the instructions can be pasted straight into the IAM console.
package guide

import (
	"fmt"
	"strings"

	"github.com/drctl/drctl/internal/roles"
	"github.com/drctl/drctl/internal/trust"
)

// TrustPolicy explains how to edit the role's trust relationship so both
// service principals can assume it. The rendered policy document is
// embedded verbatim.
func TrustPolicy(roleArn string) string {
	doc, err := trust.Default().JSON()
	if err != nil {
		// Default() marshals a fixed struct; this cannot fail at runtime.
		panic(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Add the trust relationship to %s\n\n", roleArn)
	b.WriteString("1. Open the IAM console and find the role shown above.\n")
	b.WriteString("2. Switch to the **Trust relationships** tab and choose **Edit trust policy**.\n")
	b.WriteString("3. Replace the policy document with:\n\n")
	b.WriteString("```json\n")
	b.Write(doc)
	b.WriteString("\n```\n\n")
	b.WriteString("4. Choose **Update policy**.\n")
	return b.String()
}

// S3Access explains how to attach the managed S3 policy to the role.
func S3Access(roleArn string) string {
	return attachPolicy(roleArn, "AmazonS3FullAccess", roles.PolicyS3FullAccess,
		"so training can read and write model artifacts")
}

// KinesisAccess explains how to attach the managed Kinesis Video Streams
// policy to the role.
func KinesisAccess(roleArn string) string {
	return attachPolicy(roleArn, "AmazonKinesisVideoStreamsFullAccess", roles.PolicyKinesisVideoFullAccess,
		"so the simulation can stream camera video")
}

// All concatenates every guide section in setup order.
func All(roleArn string) string {
	return strings.Join([]string{
		TrustPolicy(roleArn),
		S3Access(roleArn),
		KinesisAccess(roleArn),
	}, "\n")
}

func attachPolicy(roleArn, policyName, policyArn, why string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Attach %s to %s\n\n", policyName, roleArn)
	fmt.Fprintf(&b, "Attach this policy %s.\n\n", why)
	b.WriteString("1. Open the IAM console and find the role shown above.\n")
	b.WriteString("2. On the **Permissions** tab choose **Add permissions**, then **Attach policies**.\n")
	fmt.Fprintf(&b, "3. Search for **%s** (`%s`) and select it.\n", policyName, policyArn)
	b.WriteString("4. Choose **Add permissions**.\n")
	return b.String()
}
