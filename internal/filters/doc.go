// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides filtering capabilities for query results.
//
// The package parses filter expressions to select subsets of jobs based on
// attribute values. Filters are specified as key-operator-target expressions and
// can be combined using a configurable delimiter (default: comma).
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric comparison)
//   - > : greater than (numeric comparison)
//   - @ : contains substring (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "Status=Running" : matches jobs where Status equals "Running"
//   - "Name^deepracer-" : matches jobs where Name starts with "deepracer-"
//   - "FailureCode!@Throttl" : matches jobs whose FailureCode does not contain "Throttl"
//   - "DurationInSeconds>3600" : matches jobs running longer than an hour
//
// Filter Keys and Attributes:
//
// Filter keys are matched against the OutputKey of attributes (see attrs package).
// Keys prefixed with underscore (_) are reserved for AWS API native filters
// and are silently ignored by this package.
//
// Filter Parsing:
//
// The BuildFilters function parses a comma-delimited (or custom-delimited) filter
// specification string. Invalid specifications (unsupported operands or malformed
// expressions) are logged as warnings and skipped, allowing partial filter sets
// to be processed.
package filters
