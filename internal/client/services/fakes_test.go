package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gigbook/internal/api"
	"github.com/dmitrijs2005/gigbook/internal/client/client"
	"github.com/dmitrijs2005/gigbook/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// fakeClient implements client.Client for service tests. Methods not
// overridden panic through the nil embedded interface.
type fakeClient struct {
	client.Client

	loggedIn bool
	down     bool

	loginErr error
	clients  []models.Client
	jobs     []models.Job
	report   finance.Report
	backup   models.Backup

	// objectURL is returned for presigned uploads and exports.
	objectURL string
	presigned []string
	logoKey   string

	registered []string
	closed     bool
}

func (f *fakeClient) offline() error {
	if f.down {
		return client.ErrUnavailable
	}
	return nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.offline() }
func (f *fakeClient) Close() error                   { f.closed = true; return nil }
func (f *fakeClient) LoggedIn() bool                 { return f.loggedIn }
func (f *fakeClient) Logout()                        { f.loggedIn = false }

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	f.registered = append(f.registered, username)
	return f.offline()
}

func (f *fakeClient) Login(ctx context.Context, username, password string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeClient) ListClients(ctx context.Context) ([]models.Client, error) {
	return f.clients, f.offline()
}

func (f *fakeClient) ListJobs(ctx context.Context) ([]api.JobView, error) {
	if err := f.offline(); err != nil {
		return nil, err
	}
	out := make([]api.JobView, 0, len(f.jobs))
	for i := range f.jobs {
		out = append(out, api.JobView{Job: f.jobs[i], Summary: finance.Summarize(&f.jobs[i])})
	}
	return out, nil
}

func (f *fakeClient) Report(ctx context.Context) (*api.ReportResponse, error) {
	if err := f.offline(); err != nil {
		return nil, err
	}
	return &api.ReportResponse{Report: f.report}, nil
}

func (f *fakeClient) Receivables(ctx context.Context) (*api.ReceivablesResponse, error) {
	if err := f.offline(); err != nil {
		return nil, err
	}
	return &api.ReceivablesResponse{}, nil
}

func (f *fakeClient) ExportBackup(ctx context.Context) (*models.Backup, error) {
	if err := f.offline(); err != nil {
		return nil, err
	}
	return &f.backup, nil
}

func (f *fakeClient) PresignLogoUpload(ctx context.Context, contentType string, size int64) (*api.PresignUploadResponse, error) {
	f.presigned = append(f.presigned, fmt.Sprintf("%s:%d", contentType, size))
	return &api.PresignUploadResponse{URL: f.objectURL, Key: "users/u1/logo"}, nil
}

func (f *fakeClient) SetLogo(ctx context.Context, key string) (*models.Settings, error) {
	f.logoKey = key
	return &models.Settings{LogoKey: key}, nil
}

func (f *fakeClient) ExportReport(ctx context.Context) (*api.ExportResponse, error) {
	if err := f.offline(); err != nil {
		return nil, err
	}
	return &api.ExportResponse{Key: "users/u1/report.xlsx", URL: f.objectURL}, nil
}

func newCache(t *testing.T) cache.Repository {
	t.Helper()
	db, repo, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func newTestAnalyzer() *finance.Analyzer {
	return finance.NewAnalyzer(logging.Nop{}, time.UTC)
}

func sampleData() ([]models.Client, []models.Job) {
	clients := []models.Client{{ID: "c1", Name: "Ana", Email: "ana@example.com"}}
	jobs := []models.Job{
		{ID: "j1", Name: "Video", ClientID: "c1", Value: decimal.NewFromInt(1000), Status: models.StatusFinalized,
			Deadline: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			Payments: []models.Payment{{ID: "p1", Amount: decimal.NewFromInt(1000), Date: "2025-02-01"}}},
		{ID: "j2", Name: "Logo", ClientID: "c1", Value: decimal.NewFromInt(500), Status: models.StatusBriefing,
			Deadline: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	return clients, jobs
}
