package drafts

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, d *models.DraftNote) (*models.DraftNote, error) {
	query := `
		INSERT INTO draft_notes (user_id, title, type, content, script_lines, attachments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.Title, string(d.Type), d.Content,
		dbx.JSON[[]models.ScriptLine]{V: orEmpty(d.ScriptLines)},
		dbx.JSON[[]models.Attachment]{V: orEmpty(d.Attachments)}, dbx.NullTime(d.CreatedAt),
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) Update(ctx context.Context, d *models.DraftNote) error {
	query := `
		UPDATE draft_notes
		SET title = $3, type = $4, content = $5, script_lines = $6, attachments = $7, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		d.UserID, d.ID, d.Title, string(d.Type), d.Content,
		dbx.JSON[[]models.ScriptLine]{V: orEmpty(d.ScriptLines)},
		dbx.JSON[[]models.Attachment]{V: orEmpty(d.Attachments)})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM draft_notes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.DraftNote, error) {
	query := `
		SELECT id, title, type, content, script_lines, attachments, created_at, updated_at
		FROM draft_notes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.DraftNote
	for rows.Next() {
		d := models.DraftNote{UserID: userID}
		var (
			typ         string
			lines       dbx.JSON[[]models.ScriptLine]
			attachments dbx.JSON[[]models.Attachment]
		)
		if err := rows.Scan(&d.ID, &d.Title, &typ, &d.Content, &lines, &attachments, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		d.Type = models.DraftType(typ)
		d.ScriptLines = lines.V
		d.Attachments = attachments.V
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
