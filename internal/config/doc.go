// Package config provides configuration loading, merging, and validation
// facilities for the configur agent and provider.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults ([Defaults])
//  2. JSON config file
//  3. Environment variables (CONFIGUR_ prefix)
//  4. Command-line flags
//
// The main entry point is [GetStructuredConfig]. [StructuredConfig.Identity]
// resolves the application identity from either a connection string or
// discrete fields.
package config
