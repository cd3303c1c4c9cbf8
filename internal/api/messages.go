package api

import (
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// Empty is used where a call takes or returns nothing.
type Empty struct{}

type IDRequest struct {
	ID string `json:"id"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ClientsResponse struct {
	Clients []models.Client `json:"clients"`
}

type ClientMessage struct {
	Client models.Client `json:"client"`
}

type ListJobsRequest struct {
	IncludeDeleted bool `json:"include_deleted,omitempty"`
}

// JobView is a job with its payment position.
type JobView struct {
	Job     models.Job      `json:"job"`
	Summary finance.Summary `json:"summary"`
}

type JobsResponse struct {
	Jobs []JobView `json:"jobs"`
}

type JobMessage struct {
	Job models.Job `json:"job"`
}

type DeleteJobRequest struct {
	ID   string `json:"id"`
	Hard bool   `json:"hard,omitempty"`
}

type AddPaymentRequest struct {
	JobID   string         `json:"job_id"`
	Payment models.Payment `json:"payment"`
}

type AddPaymentResponse struct {
	Payment models.Payment  `json:"payment"`
	Summary finance.Summary `json:"summary"`
}

type SummaryResponse struct {
	Summary finance.Summary `json:"summary"`
}

type ReportResponse struct {
	Report finance.Report `json:"report"`
}

type ReceivablesResponse struct {
	Records []finance.FinancialRecord `json:"records"`
}

type SettingsMessage struct {
	Settings models.Settings `json:"settings"`
}

type PresignUploadRequest struct {
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type PresignUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type KeyRequest struct {
	Key string `json:"key"`
}

type URLResponse struct {
	URL string `json:"url"`
}

type ListEventsRequest struct {
	UpcomingOnly bool `json:"upcoming_only,omitempty"`
	Limit        int  `json:"limit,omitempty"`
}

type EventsResponse struct {
	Events []models.CalendarEvent `json:"events"`
}

type EventMessage struct {
	Event models.CalendarEvent `json:"event"`
}

type DraftsResponse struct {
	Drafts []models.DraftNote `json:"drafts"`
}

type DraftMessage struct {
	Draft models.DraftNote `json:"draft"`
}

type AskRequest struct {
	Query string `json:"query"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type ExportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type BackupMessage struct {
	Backup models.Backup `json:"backup"`
}

type ImportResponse struct {
	Result models.ImportResult `json:"result"`
}
