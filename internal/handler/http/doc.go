// Package http implements the agent's admin HTTP API.
//
// The API is read-mostly: it reports the refresh state and the names of the
// loaded settings, and it can queue an out-of-schedule refresh. Setting
// values are never served. Request tracing, access logging and response
// compression are handled here before requests reach the sync service.
package http
