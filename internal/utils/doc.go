// Package utils provides general-purpose helpers used across the agent:
// JSON response writing, the outbound resty client with request ids, and
// JWT expiry inspection.
package utils
