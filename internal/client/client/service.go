package client

import (
	"context"

	"github.com/dmitrijs2005/gigbook/internal/api"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// Client is the CLI's view of the gigbook backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) error
	Logout()
	LoggedIn() bool

	ListClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, c models.Client) (*models.Client, error)

	ListJobs(ctx context.Context) ([]api.JobView, error)
	CreateJob(ctx context.Context, j models.Job) (*api.JobView, error)
	AddPayment(ctx context.Context, jobID string, p models.Payment) (*api.AddPaymentResponse, error)
	JobSummary(ctx context.Context, jobID string) (*api.SummaryResponse, error)

	Report(ctx context.Context) (*api.ReportResponse, error)
	Receivables(ctx context.Context) (*api.ReceivablesResponse, error)
	Ask(ctx context.Context, query string) (string, error)

	GetSettings(ctx context.Context) (*models.Settings, error)
	PresignLogoUpload(ctx context.Context, contentType string, size int64) (*api.PresignUploadResponse, error)
	SetLogo(ctx context.Context, key string) (*models.Settings, error)
	ExportReport(ctx context.Context) (*api.ExportResponse, error)
	ExportBackup(ctx context.Context) (*models.Backup, error)
}
