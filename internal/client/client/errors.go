package client

import "errors"

// Errors returned by GRPCClient after mapping gRPC statuses.
var (
	// ErrUnavailable means the server could not be reached; callers may
	// fall back to the local snapshot.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLocalDataNotAvailable is returned offline when nothing was ever
	// synced to the cache.
	ErrLocalDataNotAvailable = errors.New("no cached data, connect once to sync")
)
