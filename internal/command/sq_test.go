// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestSqServerSideFilters_Empty(t *testing.T) {
	assert.Empty(t, sqServerSideFilters(""))
}

func TestSqServerSideFilters_ClientSideIgnored(t *testing.T) {
	// No leading underscore means the filter is applied client-side only.
	assert.Empty(t, sqServerSideFilters("Status=Running"))
}

func TestSqServerSideFilters_Status(t *testing.T) {
	got := sqServerSideFilters("_status=Running")

	assert.Len(t, got, 1)
	assert.Equal(t, "status", awsv2.ToString(got[0].Name))
	assert.Equal(t, []string{"Running"}, got[0].Values)
}

func TestSqServerSideFilters_UnsupportedKeyDropped(t *testing.T) {
	got := sqServerSideFilters("_bogus=x,_simulationApplicationName=deepracer-sim-app")

	assert.Len(t, got, 1)
	assert.Equal(t, "simulationApplicationName", awsv2.ToString(got[0].Name))
}

func TestSqServerSideFilters_Mixed(t *testing.T) {
	got := sqServerSideFilters("Name~deepracer,_status=Running,_robotApplicationName=robot")

	assert.Len(t, got, 2)
	assert.Equal(t, "status", awsv2.ToString(got[0].Name))
	assert.Equal(t, "robotApplicationName", awsv2.ToString(got[1].Name))
}
