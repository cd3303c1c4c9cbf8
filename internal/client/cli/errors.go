package cli

import (
	"errors"

	"github.com/dmitrijs2005/gigbook/internal/client/client"
	"github.com/dmitrijs2005/gigbook/internal/common"
)

// describe turns service errors into short messages for the prompt.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return "server unavailable and nothing cached yet"
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, common.ErrUnauthorized):
		return "not authorized, please login again"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.Is(err, common.ErrAlreadyExists):
		return "already exists"
	default:
		return err.Error()
	}
}
