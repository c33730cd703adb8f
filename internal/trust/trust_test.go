// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package trust

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault verifies the expected trust relationship: both service
// principals, one statement, sts:AssumeRole.
func TestDefault(t *testing.T) {
	d := Default()

	assert.Equal(t, "2012-10-17", d.Version)
	require.Len(t, d.Statement, 1)

	s := d.Statement[0]
	assert.Equal(t, "Allow", s.Effect)
	assert.Equal(t, "sts:AssumeRole", s.Action)
	assert.ElementsMatch(t,
		[]string{"sagemaker.amazonaws.com", "robomaker.amazonaws.com"},
		s.Principal.Service)
}

// TestJSON verifies the rendered document round-trips and keys use the IAM
// capitalized form.
func TestJSON(t *testing.T) {
	raw, err := Default().JSON()
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "Version")
	assert.Contains(t, m, "Statement")

	assert.Contains(t, string(raw), `"sts:AssumeRole"`)
}

// TestDecodePolicy verifies URL-encoded API documents decode to JSON.
func TestDecodePolicy(t *testing.T) {
	raw, err := Default().JSON()
	require.NoError(t, err)

	encoded := url.QueryEscape(string(raw))
	decoded, err := DecodePolicy(encoded)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(decoded, &m))
	assert.Contains(t, m, "Statement")
}

// TestDiff_Identical verifies an unchanged policy reports no drift.
func TestDiff_Identical(t *testing.T) {
	raw, err := Default().JSON()
	require.NoError(t, err)

	out, modified, err := Diff(raw, raw)
	require.NoError(t, err)
	assert.False(t, modified)
	assert.Empty(t, out)
}

// TestDiff_Drifted verifies a policy missing a principal reports drift.
func TestDiff_Drifted(t *testing.T) {
	want, err := Default().JSON()
	require.NoError(t, err)

	drifted := Document{
		Version: "2012-10-17",
		Statement: []Statement{
			{
				Effect:    "Allow",
				Principal: Principal{Service: []string{"sagemaker.amazonaws.com"}},
				Action:    "sts:AssumeRole",
			},
		},
	}
	current, err := drifted.JSON()
	require.NoError(t, err)

	out, modified, err := Diff(current, want)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.NotEmpty(t, out)
}

// TestDiff_BadJSON verifies malformed input surfaces an error.
func TestDiff_BadJSON(t *testing.T) {
	want, err := Default().JSON()
	require.NoError(t, err)

	_, _, err = Diff([]byte("{not json"), want)
	assert.Error(t, err)
}
