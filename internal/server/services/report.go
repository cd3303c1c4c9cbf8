package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

// ReportService computes dashboard figures from the stored jobs and clients.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	analyzer    *finance.Analyzer
	now         func() time.Time
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, a *finance.Analyzer) *ReportService {
	return &ReportService{db: db, repomanager: m, analyzer: a, now: time.Now}
}

// load fetches jobs and clients concurrently.
func (s *ReportService) load(ctx context.Context, userID string) ([]models.Job, []models.Client, error) {
	var (
		jobs    []models.Job
		clients []models.Client
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.repomanager.Jobs(s.db).List(ctx, userID)
		if err != nil {
			return fmt.Errorf("error listing jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		clients, err = s.repomanager.Clients(s.db).List(ctx, userID)
		if err != nil {
			return fmt.Errorf("error listing clients: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return jobs, clients, nil
}

func (s *ReportService) Report(ctx context.Context, userID string) (*finance.Report, error) {
	jobs, clients, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	r := s.analyzer.Report(jobs, clients)
	return &r, nil
}

// Records is the receivables listing of non-deleted jobs.
func (s *ReportService) Records(ctx context.Context, userID string) ([]finance.FinancialRecord, error) {
	jobs, clients, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return finance.Records(jobs, clients, s.now()), nil
}
