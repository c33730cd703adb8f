// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package docker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	// outputs maps a joined command line to its stdout.
	outputs map[string]string
	errs    map[string]error

	calls []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, cmd)
	if err, ok := f.errs[cmd]; ok {
		return nil, err
	}
	return []byte(f.outputs[cmd]), nil
}

// TestPurge verifies containers are removed before images and counts are
// reported.
func TestPurge(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"docker ps -aq":     "aaa\nbbb\n",
		"docker images -q":  "img1\nimg2\nimg3\n",
		"docker rm -f aaa bbb":           "",
		"docker rmi -f img1 img2 img3":   "",
	}}

	result, err := Purge(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Containers)
	assert.Equal(t, 3, result.Images)
	assert.Equal(t, []string{
		"docker ps -aq",
		"docker rm -f aaa bbb",
		"docker images -q",
		"docker rmi -f img1 img2 img3",
	}, r.calls)
}

// TestPurge_Empty verifies empty listings produce no remove calls.
func TestPurge_Empty(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"docker ps -aq":    "",
		"docker images -q": "\n",
	}}

	result, err := Purge(context.Background(), r)
	require.NoError(t, err)
	assert.Zero(t, result.Containers)
	assert.Zero(t, result.Images)
	assert.Equal(t, []string{"docker ps -aq", "docker images -q"}, r.calls)
}

// TestPurge_DedupesImageIDs verifies multi-tag images are removed once.
func TestPurge_DedupesImageIDs(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"docker ps -aq":        "",
		"docker images -q":     "img1\nimg1\nimg2\n",
		"docker rmi -f img1 img2": "",
	}}

	result, err := Purge(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Images)
	assert.Contains(t, r.calls, "docker rmi -f img1 img2")
}

// TestPurge_ListError verifies a listing failure aborts the purge.
func TestPurge_ListError(t *testing.T) {
	r := &fakeRunner{
		outputs: map[string]string{},
		errs:    map[string]error{"docker ps -aq": errors.New("docker: not found")},
	}

	_, err := Purge(context.Background(), r)
	require.Error(t, err)
	assert.Len(t, r.calls, 1)
}

// TestPurge_RemoveError verifies container removal failures surface and
// image removal is not attempted.
func TestPurge_RemoveError(t *testing.T) {
	r := &fakeRunner{
		outputs: map[string]string{"docker ps -aq": "aaa\n"},
		errs:    map[string]error{"docker rm -f aaa": errors.New("permission denied")},
	}

	result, err := Purge(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove containers")
	assert.Zero(t, result.Containers)
	assert.NotContains(t, r.calls, "docker images -q")
}
