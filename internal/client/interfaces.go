// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of a runnable agent.
type Client interface {
	// Run loads the settings, starts background refreshes and blocks until
	// ctx is cancelled.
	Run(ctx context.Context) error
}
