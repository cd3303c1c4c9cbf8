package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/dbx"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// GetMeta returns "" for an absent key.
func (r *SQLiteRepository) GetMeta(ctx context.Context, key string) (string, error) {
	return getMeta(ctx, r.db, key)
}

func getMeta(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetMeta(ctx context.Context, key, value string) error {
	return setMeta(ctx, r.db, key, value)
}

func setMeta(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceClients(ctx context.Context, clients []models.Client) error {
	return replaceRows(ctx, r, "cached_clients", clients, func(c models.Client) string { return c.ID })
}

func (r *SQLiteRepository) ReplaceJobs(ctx context.Context, jobs []models.Job) error {
	return replaceRows(ctx, r, "cached_jobs", jobs, func(j models.Job) string { return j.ID })
}

// replaceRows rewrites table inside one transaction and stamps synced_at.
// table is always a literal from this file, never user input.
func replaceRows[T any](ctx context.Context, r *SQLiteRepository, table string, rows []T, id func(T) string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}

		for _, v := range rows {
			if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+` (id, data) VALUES (?, ?)`, id(v), dbx.JSON[T]{V: v}); err != nil {
				return fmt.Errorf("failed to insert %s row %s: %w", table, id(v), err)
			}
		}

		return setMeta(ctx, tx, KeySyncedAt, r.now().UTC().Format(time.RFC3339))
	})
}

func (r *SQLiteRepository) Clients(ctx context.Context) ([]models.Client, error) {
	return scanRows[models.Client](ctx, r.db, "cached_clients")
}

func (r *SQLiteRepository) Jobs(ctx context.Context) ([]models.Job, error) {
	return scanRows[models.Job](ctx, r.db, "cached_jobs")
}

func scanRows[T any](ctx context.Context, db dbx.DBTX, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, `SELECT data FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var v dbx.JSON[T]
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, v.V)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}
	return out, nil
}

func (r *SQLiteRepository) SyncedAt(ctx context.Context) (time.Time, error) {
	v, err := r.GetMeta(ctx, KeySyncedAt)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", KeySyncedAt, err)
	}
	return t, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range []string{"cached_jobs", "cached_clients", "metadata"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
