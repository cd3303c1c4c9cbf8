// Package settings stores the single settings row of each user.
package settings

import (
	"context"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrNotFound when the user never saved settings.
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Upsert(ctx context.Context, s *models.Settings) error
}
