// Package events stores calendar events, including the ones created for job
// deadlines.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error)
	Delete(ctx context.Context, userID, id string) error
	// List returns events ordered by start time.
	List(ctx context.Context, userID string) ([]models.CalendarEvent, error)
	// ListUpcoming returns at most limit events starting at or after from.
	ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]models.CalendarEvent, error)
}
