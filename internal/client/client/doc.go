// Package client is the CLI side of the gigbook wire protocol.
//
// GRPCClient keeps the access and refresh tokens in memory, attaches the
// access token to every protected call and transparently rotates the pair
// when the server reports "token expired". gRPC statuses come back as the
// sentinel errors ErrUnavailable and ErrUnauthorized, or as the
// internal/common errors for validation, not found and conflicts.
//
// InitDatabase opens the local SQLite cache and applies its embedded goose
// migrations.
package client
