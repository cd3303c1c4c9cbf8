package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const columns = `id, name, client_id, service_type, value, cost, deadline, status,
	cloud_links, notes, observations, is_deleted, payments,
	create_calendar_event, calendar_event_id, is_recurring, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner, userID string) (*models.Job, error) {
	j := &models.Job{UserID: userID}
	var (
		links        dbx.JSON[[]string]
		observations dbx.JSON[[]models.Observation]
		payments     dbx.JSON[[]models.Payment]
	)
	err := s.Scan(&j.ID, &j.Name, &j.ClientID, &j.ServiceType, &j.Value, &j.Cost, &j.Deadline, &j.Status,
		&links, &j.Notes, &observations, &j.IsDeleted, &payments,
		&j.CreateCalendarEvent, &j.CalendarEventID, &j.IsRecurring, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.CloudLinks = links.V
	j.Observations = observations.V
	j.Payments = payments.V
	return j, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *PostgresRepository) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	query := `
		INSERT INTO jobs (user_id, name, client_id, service_type, value, cost, deadline, status,
			cloud_links, notes, observations, payments, create_calendar_event, calendar_event_id, is_recurring,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, COALESCE($16, now()))
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		j.UserID, j.Name, j.ClientID, j.ServiceType, j.Value, j.Cost, j.Deadline, j.Status,
		dbx.JSON[[]string]{V: nonNil(j.CloudLinks)}, j.Notes,
		dbx.JSON[[]models.Observation]{V: nonNil(j.Observations)},
		dbx.JSON[[]models.Payment]{V: nonNil(j.Payments)},
		j.CreateCalendarEvent, j.CalendarEventID, j.IsRecurring, dbx.NullTime(j.CreatedAt),
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) Update(ctx context.Context, j *models.Job) error {
	query := `
		UPDATE jobs
		SET name = $3, client_id = $4, service_type = $5, value = $6, cost = $7, deadline = $8,
			status = $9, cloud_links = $10, notes = $11, observations = $12,
			create_calendar_event = $13, is_recurring = $14, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		j.UserID, j.ID, j.Name, j.ClientID, j.ServiceType, j.Value, j.Cost, j.Deadline,
		j.Status, dbx.JSON[[]string]{V: nonNil(j.CloudLinks)}, j.Notes,
		dbx.JSON[[]models.Observation]{V: nonNil(j.Observations)},
		j.CreateCalendarEvent, j.IsRecurring)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, userID, id string) error {
	query := `UPDATE jobs SET is_deleted = true, updated_at = now() WHERE user_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs WHERE user_id = $1 AND id = $2`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, userID, id), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows, userID)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// AppendPayment concatenates p to the payments array. Deleted jobs do not
// accept payments and report common.ErrNotFound.
func (r *PostgresRepository) AppendPayment(ctx context.Context, userID, jobID string, p models.Payment) error {
	query := `
		UPDATE jobs
		SET payments = payments || $3::jsonb, updated_at = now()
		WHERE user_id = $1 AND id = $2 AND NOT is_deleted
	`
	res, err := r.db.ExecContext(ctx, query, userID, jobID, dbx.JSON[[]models.Payment]{V: []models.Payment{p}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) SetCalendarEvent(ctx context.Context, userID, jobID, eventID string) error {
	query := `UPDATE jobs SET calendar_event_id = $3 WHERE user_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, jobID, eventID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
