// Package refreshtokens persists the opaque refresh tokens handed out at
// login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete is idempotent.
	Delete(ctx context.Context, token string) error

	// DeleteByUser revokes every token of the user (logout everywhere).
	DeleteByUser(ctx context.Context, userID string) error
}
