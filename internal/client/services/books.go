package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/api"
	"github.com/dmitrijs2005/gigbook/internal/client/client"
	"github.com/dmitrijs2005/gigbook/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gigbook/internal/filex"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/netx"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// Source tells whether data came from the server or the local snapshot.
type Source string

const (
	SourceServer Source = "server"
	SourceCache  Source = "cache"
)

type ReportResult struct {
	Report   finance.Report
	Source   Source
	SyncedAt time.Time
}

type ReceivablesResult struct {
	Records  []finance.FinancialRecord
	Source   Source
	SyncedAt time.Time
}

// BookService is the bookkeeping surface of the CLI.
type BookService interface {
	Clients(ctx context.Context) ([]models.Client, Source, error)
	AddClient(ctx context.Context, c models.Client) (*models.Client, error)
	Jobs(ctx context.Context) ([]api.JobView, Source, error)
	AddJob(ctx context.Context, j models.Job) (*api.JobView, error)
	AddPayment(ctx context.Context, jobID string, p models.Payment) (*api.AddPaymentResponse, error)
	Summary(ctx context.Context, jobID string) (finance.Summary, error)
	Report(ctx context.Context) (*ReportResult, error)
	Receivables(ctx context.Context) (*ReceivablesResult, error)
	Ask(ctx context.Context, query string) (string, error)
	Settings(ctx context.Context) (*models.Settings, error)
	// UploadLogo sends the image at path to the object store and makes it
	// the account logo.
	UploadLogo(ctx context.Context, path string) (*models.Settings, error)
	// ExportReport builds the spreadsheet on the server. A non-empty path
	// also downloads it there.
	ExportReport(ctx context.Context, path string) (*api.ExportResponse, error)
	// Backup writes the server backup document to path and returns it.
	Backup(ctx context.Context, path string) (*models.Backup, error)
}

type bookService struct {
	client   client.Client
	cache    cache.Repository
	analyzer *finance.Analyzer
	now      func() time.Time
}

func NewBookService(c client.Client, r cache.Repository, a *finance.Analyzer) BookService {
	return &bookService{client: c, cache: r, analyzer: a, now: time.Now}
}

// Clients lists online and refreshes the cache, or serves the cache when
// the server is unreachable.
func (s *bookService) Clients(ctx context.Context) ([]models.Client, Source, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, "", err
	}

	list, err := s.client.ListClients(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			return nil, "", err
		}
		cached, cerr := s.cachedClients(ctx)
		return cached, SourceCache, cerr
	}

	if err := s.cache.ReplaceClients(ctx, list); err != nil {
		return nil, "", err
	}
	return list, SourceServer, nil
}

func (s *bookService) cachedClients(ctx context.Context) ([]models.Client, error) {
	at, err := s.cache.SyncedAt(ctx)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, client.ErrLocalDataNotAvailable
	}
	return s.cache.Clients(ctx)
}

func (s *bookService) AddClient(ctx context.Context, c models.Client) (*models.Client, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}
	return s.client.CreateClient(ctx, c)
}

func (s *bookService) Jobs(ctx context.Context) ([]api.JobView, Source, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, "", err
	}

	views, err := s.client.ListJobs(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			return nil, "", err
		}
		jobs, _, cerr := s.cachedSnapshot(ctx)
		if cerr != nil {
			return nil, "", cerr
		}
		views = make([]api.JobView, 0, len(jobs))
		for i := range jobs {
			views = append(views, api.JobView{Job: jobs[i], Summary: finance.Summarize(&jobs[i])})
		}
		return views, SourceCache, nil
	}

	jobs := make([]models.Job, 0, len(views))
	for _, v := range views {
		jobs = append(jobs, v.Job)
	}
	if err := s.cache.ReplaceJobs(ctx, jobs); err != nil {
		return nil, "", err
	}
	return views, SourceServer, nil
}

// cachedSnapshot returns the cached jobs and clients, or
// ErrLocalDataNotAvailable when nothing was ever synced.
func (s *bookService) cachedSnapshot(ctx context.Context) ([]models.Job, []models.Client, error) {
	clients, err := s.cachedClients(ctx)
	if err != nil {
		return nil, nil, err
	}
	jobs, err := s.cache.Jobs(ctx)
	if err != nil {
		return nil, nil, err
	}
	return jobs, clients, nil
}

func (s *bookService) AddJob(ctx context.Context, j models.Job) (*api.JobView, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}
	return s.client.CreateJob(ctx, j)
}

func (s *bookService) AddPayment(ctx context.Context, jobID string, p models.Payment) (*api.AddPaymentResponse, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}
	return s.client.AddPayment(ctx, jobID, p)
}

func (s *bookService) Summary(ctx context.Context, jobID string) (finance.Summary, error) {
	if err := requireLogin(s.client); err != nil {
		return finance.Summary{}, err
	}
	resp, err := s.client.JobSummary(ctx, jobID)
	if err != nil {
		return finance.Summary{}, err
	}
	return resp.Summary, nil
}

// Report asks the server and falls back to computing the same report from
// the cached snapshot when the server is unreachable.
func (s *bookService) Report(ctx context.Context) (*ReportResult, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}

	resp, err := s.client.Report(ctx)
	if err == nil {
		return &ReportResult{Report: resp.Report, Source: SourceServer}, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, err
	}

	jobs, clients, err := s.cachedSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	at, err := s.cache.SyncedAt(ctx)
	if err != nil {
		return nil, err
	}
	return &ReportResult{Report: s.analyzer.Report(jobs, clients), Source: SourceCache, SyncedAt: at}, nil
}

func (s *bookService) Receivables(ctx context.Context) (*ReceivablesResult, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}

	resp, err := s.client.Receivables(ctx)
	if err == nil {
		return &ReceivablesResult{Records: resp.Records, Source: SourceServer}, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, err
	}

	jobs, clients, err := s.cachedSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	at, err := s.cache.SyncedAt(ctx)
	if err != nil {
		return nil, err
	}
	return &ReceivablesResult{Records: finance.Records(jobs, clients, s.now()), Source: SourceCache, SyncedAt: at}, nil
}

func (s *bookService) Ask(ctx context.Context, query string) (string, error) {
	if err := requireLogin(s.client); err != nil {
		return "", err
	}
	return s.client.Ask(ctx, query)
}

func (s *bookService) Settings(ctx context.Context) (*models.Settings, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}
	return s.client.GetSettings(ctx)
}

func (s *bookService) UploadLogo(ctx context.Context, path string) (*models.Settings, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	contentType := http.DetectContentType(data)

	up, err := s.client.PresignLogoUpload(ctx, contentType, int64(len(data)))
	if err != nil {
		return nil, err
	}
	if err := netx.Upload(ctx, up.URL, contentType, data); err != nil {
		return nil, err
	}
	return s.client.SetLogo(ctx, up.Key)
}

func (s *bookService) ExportReport(ctx context.Context, path string) (*api.ExportResponse, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}

	res, err := s.client.ExportReport(ctx)
	if err != nil || path == "" {
		return res, err
	}

	data, err := netx.Download(ctx, res.URL)
	if err != nil {
		return nil, err
	}
	if err := filex.WriteFile(path, data); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *bookService) Backup(ctx context.Context, path string) (*models.Backup, error) {
	if err := requireLogin(s.client); err != nil {
		return nil, err
	}

	b, err := s.client.ExportBackup(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	if err := filex.WriteFile(path, data); err != nil {
		return nil, err
	}
	return b, nil
}
