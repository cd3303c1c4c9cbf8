// Package drafts stores free-form notes and video scripts.
package drafts

import (
	"context"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, d *models.DraftNote) (*models.DraftNote, error)
	Update(ctx context.Context, d *models.DraftNote) error
	Delete(ctx context.Context, userID, id string) error
	// List returns the most recently edited drafts first.
	List(ctx context.Context, userID string) ([]models.DraftNote, error)
}
