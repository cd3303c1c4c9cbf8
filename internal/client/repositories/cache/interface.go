package cache

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

const (
	KeyUsername = "username"
	KeySyncedAt = "synced_at"
)

type Repository interface {
	GetMeta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error

	// ReplaceClients and ReplaceJobs swap the whole cached set.
	ReplaceClients(ctx context.Context, clients []models.Client) error
	ReplaceJobs(ctx context.Context, jobs []models.Job) error

	Clients(ctx context.Context) ([]models.Client, error)
	Jobs(ctx context.Context) ([]models.Job, error)

	// SyncedAt reports when the snapshot was last replaced. The zero time
	// means never.
	SyncedAt(ctx context.Context) (time.Time, error)

	Clear(ctx context.Context) error
}
