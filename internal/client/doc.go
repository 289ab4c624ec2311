// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the configur agent runtime: the client side of
// the settings service running as a standalone process.
//
// It wires storage, the sync service, the refresh scheduler and the optional
// admin API into a single process lifecycle.
package client
