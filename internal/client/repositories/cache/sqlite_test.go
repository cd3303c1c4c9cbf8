package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/gigbook/internal/client/migrations"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(db, "."))
	return db
}

func newRepo(t *testing.T) *SQLiteRepository {
	r := NewSQLiteRepository(setupDB(t))
	r.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestMeta_SetGetAndMissing(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	v, err := r.GetMeta(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, r.SetMeta(ctx, KeyUsername, "ana"))
	require.NoError(t, r.SetMeta(ctx, KeyUsername, "bia"))

	v, err = r.GetMeta(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "bia", v)
}

func TestReplaceJobs_RoundTripAndReplace(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	jobs := []models.Job{
		{ID: "j2", Name: "Logo", Value: decimal.NewFromInt(500), Status: models.StatusBriefing},
		{ID: "j1", Name: "Video", Value: decimal.RequireFromString("1000.50"),
			Payments: []models.Payment{{ID: "p1", Amount: decimal.NewFromInt(200), Date: "2025-01-10"}}},
	}
	require.NoError(t, r.ReplaceJobs(ctx, jobs))

	got, err := r.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "j1", got[0].ID)
	assert.True(t, got[0].Value.Equal(decimal.RequireFromString("1000.5")))
	require.Len(t, got[0].Payments, 1)
	assert.Equal(t, "2025-01-10", got[0].Payments[0].Date)

	require.NoError(t, r.ReplaceJobs(ctx, jobs[:1]))
	got, err = r.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Logo", got[0].Name)
}

func TestReplaceClients_StampsSyncedAt(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	at, err := r.SyncedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	require.NoError(t, r.ReplaceClients(ctx, []models.Client{{ID: "c1", Name: "Ana", Email: "ana@example.com"}}))

	clients, err := r.Clients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana", clients[0].Name)

	at, err = r.SyncedAt(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), at)
}

func TestClear_RemovesEverything(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetMeta(ctx, KeyUsername, "ana"))
	require.NoError(t, r.ReplaceJobs(ctx, []models.Job{{ID: "j1"}}))
	require.NoError(t, r.ReplaceClients(ctx, []models.Client{{ID: "c1"}}))

	require.NoError(t, r.Clear(ctx))

	jobs, err := r.Jobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	clients, err := r.Clients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
	v, err := r.GetMeta(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestErrorsWrapped_OnClosedDB(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.GetMeta(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.SetMeta(ctx, "k", "v")
	require.ErrorContains(t, err, "failed to set metadata[k]")

	_, err = r.Jobs(ctx)
	require.ErrorContains(t, err, "failed to list cached_jobs")
}
