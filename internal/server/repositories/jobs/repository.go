// Package jobs stores jobs together with their payment history. Payments,
// cloud links and the observation log live in jsonb columns.
package jobs

import (
	"context"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	// Update rewrites the editable fields. Payments are left alone; use
	// AppendPayment.
	Update(ctx context.Context, job *models.Job) error
	SoftDelete(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*models.Job, error)
	// List returns jobs newest first, including soft-deleted ones.
	List(ctx context.Context, userID string) ([]models.Job, error)
	AppendPayment(ctx context.Context, userID, jobID string, p models.Payment) error
	SetCalendarEvent(ctx context.Context, userID, jobID, eventID string) error
}
