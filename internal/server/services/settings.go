package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

const (
	DefaultBillingURL            = "https://www.asaas.com/login"
	DefaultPrimaryColor          = "#f8fafc"
	DefaultAccentColor           = "#1e293b"
	DefaultSplashBackgroundColor = "#111827"
)

func DefaultSettings(userID string) *models.Settings {
	return &models.Settings{
		UserID:                userID,
		BillingURL:            DefaultBillingURL,
		PrimaryColor:          DefaultPrimaryColor,
		AccentColor:           DefaultAccentColor,
		SplashBackgroundColor: DefaultSplashBackgroundColor,
	}
}

type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager) *SettingsService {
	return &SettingsService{db: db, repomanager: m, now: time.Now}
}

// Get returns the stored settings or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.Settings, error) {
	st, err := s.repomanager.Settings(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}
	return st, nil
}

// Save stores the editable fields. Calendar state and the logo are kept
// as they are; they change through their own operations.
func (s *SettingsService) Save(ctx context.Context, userID string, in *models.Settings) (*models.Settings, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.BillingURL = strings.TrimSpace(in.BillingURL)
	if in.BillingURL == "" {
		in.BillingURL = DefaultBillingURL
	}

	var v checks
	v.httpURL("billing_url", in.BillingURL)
	v.color("primary_color", in.PrimaryColor)
	v.color("accent_color", in.AccentColor)
	v.color("splash_background_color", in.SplashBackgroundColor)
	if v.err != nil {
		return nil, v.err
	}

	return s.update(ctx, userID, func(st *models.Settings) {
		st.DisplayName = in.DisplayName
		st.BillingURL = in.BillingURL
		st.PrimaryColor = strings.ToLower(in.PrimaryColor)
		st.AccentColor = strings.ToLower(in.AccentColor)
		st.SplashBackgroundColor = strings.ToLower(in.SplashBackgroundColor)
		st.PrivacyMode = in.PrivacyMode
	})
}

func (s *SettingsService) ConnectCalendar(ctx context.Context, userID string) (*models.Settings, error) {
	return s.update(ctx, userID, func(st *models.Settings) {
		now := s.now()
		st.CalendarConnected = true
		st.CalendarLastSync = &now
	})
}

func (s *SettingsService) DisconnectCalendar(ctx context.Context, userID string) (*models.Settings, error) {
	return s.update(ctx, userID, func(st *models.Settings) {
		st.CalendarConnected = false
		st.CalendarLastSync = nil
	})
}

// SetLogo records an uploaded logo. The key must belong to the user.
func (s *SettingsService) SetLogo(ctx context.Context, userID, key string) (*models.Settings, error) {
	if key != "" && !ownsKey(userID, key) {
		return nil, common.Invalid("logo_key", "unknown key")
	}
	return s.update(ctx, userID, func(st *models.Settings) { st.LogoKey = key })
}

func (s *SettingsService) update(ctx context.Context, userID string, fn func(*models.Settings)) (*models.Settings, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	fn(st)
	st.UserID = userID
	if err := s.repomanager.Settings(s.db).Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("error saving settings: %w", err)
	}
	return st, nil
}
