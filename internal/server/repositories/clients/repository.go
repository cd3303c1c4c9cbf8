// Package clients stores the user's client roster.
package clients

import (
	"context"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*models.Client, error)
	// List returns the newest clients first.
	List(ctx context.Context, userID string) ([]models.Client, error)
}
