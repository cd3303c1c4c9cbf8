// Package cache keeps the last snapshot of jobs and clients the CLI fetched
// from the server, plus a few metadata keys, in a local SQLite file. The
// snapshot lets reports be computed while the server is unreachable.
package cache
