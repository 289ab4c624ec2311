// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Environment variables are read with this prefix, e.g. CONFIGUR_APP_ID.
const EnvPrefix = "CONFIGUR_"

// Cache drivers understood by the store package.
const (
	CacheDriverFile   = "file"
	CacheDriverSQLite = "sqlite"
)

// Settings API versions. v1 serves /app-settings/find, v2 /valuables/find.
const (
	APIVersionV1 = "v1"
	APIVersionV2 = "v2"
)

// StructuredConfig is the top-level configuration container for the
// configur agent and provider. It is populated by merging built-in defaults,
// an optional JSON file, environment variables, and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the application identity used against the settings API.
	App App `envPrefix:"APP_"`

	// Remote holds the settings API and identity authority endpoints.
	Remote Remote `envPrefix:"REMOTE_"`

	// Cache holds the local fallback cache settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Sync holds the refresh schedule and push settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Admin holds the optional admin HTTP API settings.
	Admin Admin `envPrefix:"ADMIN_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIGUR_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App identifies the application to the settings service.
//
// Either ConnectionString or the three discrete fields must be provided. When
// both are present the discrete fields override the matching parts of the
// connection string.
type App struct {
	// ID is the application (client) id.
	// Env: CONFIGUR_APP_ID
	ID string `env:"ID"`

	// Secret is the client secret sent to the identity authority.
	// Env: CONFIGUR_APP_SECRET
	Secret string `env:"SECRET"`

	// Password is the local passphrase that unlocks the bundle's private key.
	// It is never transmitted.
	// Env: CONFIGUR_APP_PASSWORD
	Password string `env:"PASSWORD"`

	// ConnectionString has the form AppId=..;AppSecret=..;AppPassword=..
	// Env: CONFIGUR_APP_CONNECTION_STRING
	ConnectionString string `env:"CONNECTION_STRING"`

	// Version is the version string reported by the agent.
	// Env: CONFIGUR_APP_VERSION
	Version string `env:"VERSION"`
}

// Remote holds the outbound endpoints and transport settings.
type Remote struct {
	// APIHost is the settings API host ("api.configur.it"). A scheme may be
	// included for local development; https is assumed otherwise.
	// Env: CONFIGUR_REMOTE_API_HOST
	APIHost string `env:"API_HOST"`

	// IdentityAuthority is the base URL of the token endpoint's issuer.
	// Env: CONFIGUR_REMOTE_IDENTITY_AUTHORITY
	IdentityAuthority string `env:"IDENTITY_AUTHORITY"`

	// IsDevelopment switches to X-ClientId authentication and skips the
	// identity authority.
	// Env: CONFIGUR_REMOTE_DEVELOPMENT
	IsDevelopment bool `env:"DEVELOPMENT"`

	// RequestTimeout bounds every outbound call (e.g. "5s").
	// Env: CONFIGUR_REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// APIVersion selects the find endpoint ("v1" or "v2").
	// Env: CONFIGUR_REMOTE_API_VERSION
	APIVersion string `env:"API_VERSION"`
}

// Cache configures the local fallback cache.
type Cache struct {
	// Enabled turns the cache on. A disabled cache never hits and never writes.
	// Env: CONFIGUR_CACHE_ENABLED
	Enabled bool `env:"ENABLED"`

	// Driver is "file" or "sqlite".
	// Env: CONFIGUR_CACHE_DRIVER
	Driver string `env:"DRIVER"`

	// Dir is the directory holding configur_appsettings_{appId}.json files.
	// Env: CONFIGUR_CACHE_DIR
	Dir string `env:"DIR"`

	// DSN is the SQLite database path used by the sqlite driver.
	// Env: CONFIGUR_CACHE_DSN
	DSN string `env:"DSN"`
}

// Sync configures the refresh mechanisms.
type Sync struct {
	// RefreshInterval is the period of the scheduled refresh (e.g. "5m").
	// Env: CONFIGUR_SYNC_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// DisablePush turns off the push subscription; only the timer refreshes.
	// Env: CONFIGUR_SYNC_DISABLE_PUSH
	DisablePush bool `env:"DISABLE_PUSH"`
}

// Admin configures the agent's admin HTTP API.
type Admin struct {
	// HTTPAddress is the listen address in "host:port" form. Empty disables
	// the admin API.
	// Env: CONFIGUR_ADMIN_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Log configures the agent logger.
type Log struct {
	// Level is a zerolog level name.
	// Env: CONFIGUR_LOG_LEVEL
	Level string `env:"LEVEL"`

	// File, when set, receives the log output instead of stdout.
	// Env: CONFIGUR_LOG_FILE
	File string `env:"FILE"`
}

// Defaults returns the built-in configuration every other source is merged
// on top of.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Remote: Remote{
			APIHost:           "api.configur.it",
			IdentityAuthority: "https://id.configur.it",
			RequestTimeout:    5 * time.Second,
			APIVersion:        APIVersionV1,
		},
		Cache: Cache{
			Driver: CacheDriverFile,
			Dir:    ".",
		},
		Sync: Sync{
			RefreshInterval: 5 * time.Minute,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources. Later sources override non-zero fields of earlier ones:
//  1. Built-in defaults
//  2. JSON file (path resolved from env and flags)
//  3. Environment variables
//  4. Command-line flags parsed from args
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}
