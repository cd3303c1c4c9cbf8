package events

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/dbx"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	query := `
		INSERT INTO calendar_events (user_id, title, starts, ends, all_day, source, job_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	jobID := sql.NullString{String: e.JobID, Valid: e.JobID != ""}
	err := r.db.QueryRowContext(ctx, query,
		e.UserID, e.Title, e.Start, e.End, e.AllDay, string(e.Source), jobID,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	query := `
		SELECT id, title, starts, ends, all_day, source, job_id
		FROM calendar_events
		WHERE user_id = $1
		ORDER BY starts
	`
	return r.query(ctx, userID, query, userID)
}

func (r *PostgresRepository) ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]models.CalendarEvent, error) {
	query := `
		SELECT id, title, starts, ends, all_day, source, job_id
		FROM calendar_events
		WHERE user_id = $1 AND starts >= $2
		ORDER BY starts
		LIMIT $3
	`
	return r.query(ctx, userID, query, userID, from, limit)
}

func (r *PostgresRepository) query(ctx context.Context, userID, query string, args ...any) ([]models.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.CalendarEvent
	for rows.Next() {
		e := models.CalendarEvent{UserID: userID}
		var (
			source string
			jobID  sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Start, &e.End, &e.AllDay, &source, &jobID); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		e.Source = models.EventSource(source)
		e.JobID = jobID.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
