package clients

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

const columns = `id, name, company, email, phone, tax_id, notes, created_at`

func (r *PostgresRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	query := `
		INSERT INTO clients (user_id, name, company, email, phone, tax_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()))
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Name, c.Company, c.Email, c.Phone, c.TaxID, c.Notes, dbx.NullTime(c.CreatedAt),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Client) error {
	query := `
		UPDATE clients
		SET name = $3, company = $4, email = $5, phone = $6, tax_id = $7, notes = $8
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		c.UserID, c.ID, c.Name, c.Company, c.Email, c.Phone, c.TaxID, c.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Client, error) {
	query := `SELECT ` + columns + ` FROM clients WHERE user_id = $1 AND id = $2`

	c := &models.Client{UserID: userID}
	err := r.db.QueryRowContext(ctx, query, userID, id).
		Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.TaxID, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Client, error) {
	query := `SELECT ` + columns + ` FROM clients WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		c := models.Client{UserID: userID}
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.TaxID, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
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
