package assistant

import (
	"context"
	"errors"
)

var (
	errNoAPIKey      = errors.New("api key not configured")
	errEmptyResponse = errors.New("empty completion")
)

// Completer turns a system instruction and a user prompt into a reply.
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}
