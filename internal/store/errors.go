package store

import "errors"

// Sentinel errors returned by the cache backends. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrCacheMiss is returned by Load when no usable bundle is cached for the
	// application: nothing was saved yet, the cache is disabled, or the
	// cached payload no longer parses.
	ErrCacheMiss = errors.New("bundle cache miss")

	// ErrEmptyAppID is returned when a cache operation is attempted without an
	// application id.
	ErrEmptyAppID = errors.New("app id must not be empty")

	// ErrUnknownCacheDriver is returned by [NewStorages] for a driver name it
	// does not recognise.
	ErrUnknownCacheDriver = errors.New("unknown cache driver")
)

// Low-level database operation errors of the sqlite backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the cache table fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when the upsert into the cache table
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
