// Package server runs the agent's admin HTTP API.
//
// It owns the listener lifecycle only: startup, and graceful shutdown bounded
// by a timeout. Signal handling belongs to the process that embeds it.
package server
