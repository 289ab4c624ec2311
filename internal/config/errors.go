package config

import "errors"

// Validation errors returned by [StructuredConfig.Validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates a missing or incomplete identity
	// (neither a valid connection string nor id, secret and password).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRemoteConfigs indicates invalid endpoints (for example, empty
	// API host, missing authority outside development mode, or unknown API
	// version).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidCacheConfigs indicates an unknown cache driver or a sqlite
	// driver without DSN.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidSyncConfigs indicates a non-positive refresh interval.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidFlags indicates the command line could not be parsed.
	ErrInvalidFlags = errors.New("invalid command-line flags")
)
