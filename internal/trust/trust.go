// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trust

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Principal names the service principals that must be allowed to assume the
// execution role. Both the training and the simulation service act on the
// user's behalf.
type Principal struct {
	Service []string `json:"Service"`
}

// Statement is a single trust policy statement.
type Statement struct {
	Effect    string    `json:"Effect"`
	Principal Principal `json:"Principal"`
	Action    string    `json:"Action"`
}

// Document is an IAM assume-role policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Default returns the trust relationship the execution role needs: both
// service principals granted sts:AssumeRole.
func Default() Document {
	return Document{
		Version: "2012-10-17",
		Statement: []Statement{
			{
				Effect: "Allow",
				Principal: Principal{
					Service: []string{
						"sagemaker.amazonaws.com",
						"robomaker.amazonaws.com",
					},
				},
				Action: "sts:AssumeRole",
			},
		},
	}
}

// JSON renders the document as indented JSON, the shape the IAM console
// shows on the Trust relationships tab.
func (d Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// DecodePolicy converts an AssumeRolePolicyDocument as returned by the IAM
// API (URL-encoded JSON) into plain JSON bytes.
func DecodePolicy(doc string) ([]byte, error) {
	decoded, err := url.QueryUnescape(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode policy document: %w", err)
	}
	return []byte(decoded), nil
}

// Diff compares a live trust policy against the expected document and
// returns a rendered diff plus whether the two differ.
func Diff(current, want []byte) (string, bool, error) {
	differ := gojsondiff.New()

	delta, err := differ.Compare(current, want)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare trust policies: %w", err)
	}

	if !delta.Modified() {
		return "", false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(current, &jdoc); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal trust policy: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       true,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return "", false, err
	}

	return diffString, true, nil
}
