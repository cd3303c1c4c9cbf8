package models

import "time"

// Settings is the per-user branding and integration panel.
type Settings struct {
	UserID                string     `json:"-"`
	DisplayName           string     `json:"display_name"`
	LogoKey               string     `json:"logo_key,omitempty"`
	BillingURL            string     `json:"billing_url"`
	PrimaryColor          string     `json:"primary_color"`
	AccentColor           string     `json:"accent_color"`
	SplashBackgroundColor string     `json:"splash_background_color"`
	PrivacyMode           bool       `json:"privacy_mode"`
	CalendarConnected     bool       `json:"calendar_connected"`
	CalendarLastSync      *time.Time `json:"calendar_last_sync,omitempty"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
