package settings

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

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Settings, error) {
	query := `
		SELECT display_name, logo_key, billing_url, primary_color, accent_color,
			splash_background_color, privacy_mode, calendar_connected, calendar_last_sync, updated_at
		FROM app_settings
		WHERE user_id = $1
	`
	s := &models.Settings{UserID: userID}
	var lastSync sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.DisplayName, &s.LogoKey, &s.BillingURL, &s.PrimaryColor, &s.AccentColor,
		&s.SplashBackgroundColor, &s.PrivacyMode, &s.CalendarConnected, &lastSync, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastSync.Valid {
		t := lastSync.Time
		s.CalendarLastSync = &t
	}
	return s, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO app_settings (user_id, display_name, logo_key, billing_url, primary_color, accent_color,
			splash_background_color, privacy_mode, calendar_connected, calendar_last_sync, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			logo_key = EXCLUDED.logo_key,
			billing_url = EXCLUDED.billing_url,
			primary_color = EXCLUDED.primary_color,
			accent_color = EXCLUDED.accent_color,
			splash_background_color = EXCLUDED.splash_background_color,
			privacy_mode = EXCLUDED.privacy_mode,
			calendar_connected = EXCLUDED.calendar_connected,
			calendar_last_sync = EXCLUDED.calendar_last_sync,
			updated_at = now()
	`
	var lastSync sql.NullTime
	if s.CalendarLastSync != nil {
		lastSync = sql.NullTime{Time: *s.CalendarLastSync, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		s.UserID, s.DisplayName, s.LogoKey, s.BillingURL, s.PrimaryColor, s.AccentColor,
		s.SplashBackgroundColor, s.PrivacyMode, s.CalendarConnected, lastSync)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
