// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller navigates AWS API result payloads to extract the values
// commands render and filter on.
package driller
