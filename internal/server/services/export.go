package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/dbx"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gigbook/internal/server/storage"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Sheet names of the performance workbook, in order.
const (
	SheetMonthly  = "Monthly"
	SheetClients  = "Clients"
	SheetServices = "Services"
	SheetCosts    = "Costs"
	SheetKPIs     = "KPIs"
)

// ExportedFile is an object written to storage and a link to fetch it.
type ExportedFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	reports     *ReportService
	jobs        *JobService
	store       ObjectStore
	log         logging.Logger
	now         func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, reports *ReportService,
	jobs *JobService, store ObjectStore, log logging.Logger) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: m,
		reports:     reports,
		jobs:        jobs,
		store:       store,
		log:         log.With("module", "export"),
		now:         time.Now,
	}
}

// ExportReport renders the performance workbook, stores it under the
// user's prefix and returns a download link.
func (s *ExportService) ExportReport(ctx context.Context, userID string) (*ExportedFile, error) {
	r, err := s.reports.Report(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, err := BuildWorkbook(r)
	if err != nil {
		return nil, fmt.Errorf("error building workbook: %w", err)
	}

	key := storage.NewKey(userID, s.now()) + ".xlsx"
	if err := s.store.Put(ctx, key, xlsxContentType, data); err != nil {
		s.log.Error(ctx, "upload workbook failed", "error", err)
		return nil, common.ErrInternal
	}
	url, err := s.store.PresignGet(ctx, key)
	if err != nil {
		s.log.Error(ctx, "presign workbook failed", "error", err)
		return nil, common.ErrInternal
	}
	return &ExportedFile{Key: key, URL: url}, nil
}

// BuildWorkbook lays the report out over five sheets.
func BuildWorkbook(r *finance.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetMonthly, monthlyRows(r.Monthly)},
		{SheetClients, rankedRows("Client", "Revenue", r.ClientRevenue)},
		{SheetServices, rankedRows("Service", "Revenue", r.ServiceRevenue)},
		{SheetCosts, rankedRows("Service", "Cost", r.ServiceCosts)},
		{SheetKPIs, [][]any{
			{"Metric", "Value"},
			{"Average job value", r.AverageJobValue.InexactFloat64()},
			{"Average payment days", r.AveragePaymentDays},
			{"Jobs", len(r.Summaries)},
		}},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, err
		}
		for n, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, n+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, err
			}
		}
		if err := f.SetRowStyle(sh.name, 1, 1, bold); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func monthlyRows(months []finance.MonthBucket) [][]any {
	rows := [][]any{{"Month", "Revenue", "Cost", "Profit", "Completed jobs"}}
	for _, m := range months {
		rows = append(rows, []any{
			m.Label,
			m.Revenue.InexactFloat64(),
			m.Cost.InexactFloat64(),
			m.Profit.InexactFloat64(),
			m.CompletedJobs,
		})
	}
	return rows
}

func rankedRows(label, amount string, ranked []finance.Ranked) [][]any {
	rows := [][]any{{label, amount}}
	for _, r := range ranked {
		rows = append(rows, []any{r.Label, r.Amount.InexactFloat64()})
	}
	return rows
}

// ExportBackup collects clients, jobs (soft-deleted included), settings
// and drafts.
func (s *ExportService) ExportBackup(ctx context.Context, userID string) (*models.Backup, error) {
	b := &models.Backup{Version: models.BackupVersion, ExportedAt: s.now().UTC()}

	var err error
	if b.Clients, err = s.repomanager.Clients(s.db).List(ctx, userID); err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	if b.Jobs, err = s.repomanager.Jobs(s.db).List(ctx, userID); err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	if b.Drafts, err = s.repomanager.Drafts(s.db).List(ctx, userID); err != nil {
		return nil, fmt.Errorf("error listing drafts: %w", err)
	}
	st, err := s.repomanager.Settings(s.db).Get(ctx, userID)
	switch {
	case err == nil:
		b.Settings = st
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error loading settings: %w", err)
	}
	return b, nil
}

// ImportBackup recreates the backup's clients, jobs and drafts under new
// ids in one transaction and restores its settings. Jobs follow their
// client through the id remap; a job whose client is not in the backup
// fails the whole import.
func (s *ExportService) ImportBackup(ctx context.Context, userID string, b *models.Backup) (*models.ImportResult, error) {
	if b == nil || b.Version != models.BackupVersion {
		return nil, common.Invalid("version", fmt.Sprintf("unsupported backup version, want %d", models.BackupVersion))
	}

	res := &models.ImportResult{}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		clientIDs := make(map[string]string, len(b.Clients))
		for _, c := range b.Clients {
			oldID := c.ID
			c.ID, c.UserID = "", userID
			normalizeClient(&c)
			if err := validateClient(&c); err != nil {
				return fmt.Errorf("client %q: %w", oldID, err)
			}
			created, err := s.repomanager.Clients(tx).Create(ctx, &c)
			if err != nil {
				return fmt.Errorf("error creating client: %w", err)
			}
			clientIDs[oldID] = created.ID
			res.Clients++
		}

		for _, j := range b.Jobs {
			oldID := j.ID
			newClient, ok := clientIDs[j.ClientID]
			if !ok {
				return common.Invalid("client_id", fmt.Sprintf("job %q references a client missing from the backup", oldID))
			}
			j.ID, j.UserID, j.ClientID = "", userID, newClient
			j.CalendarEventID, j.CreateCalendarEvent = "", false
			normalizeJob(&j)
			if err := s.jobs.validateJob(ctx, tx, userID, &j); err != nil {
				return fmt.Errorf("job %q: %w", oldID, err)
			}
			for i := range j.Payments {
				if err := s.jobs.preparePayment(&j.Payments[i]); err != nil {
					return fmt.Errorf("job %q: %w", oldID, err)
				}
			}
			if _, err := s.repomanager.Jobs(tx).Create(ctx, &j); err != nil {
				return fmt.Errorf("error creating job: %w", err)
			}
			if j.IsDeleted {
				if err := s.repomanager.Jobs(tx).SoftDelete(ctx, userID, j.ID); err != nil {
					return fmt.Errorf("error deleting job: %w", err)
				}
			}
			res.Jobs++
		}

		for _, d := range b.Drafts {
			d.ID = ""
			if err := prepareDraft(userID, &d); err != nil {
				return fmt.Errorf("draft %q: %w", d.Title, err)
			}
			if _, err := s.repomanager.Drafts(tx).Create(ctx, &d); err != nil {
				return fmt.Errorf("error creating draft: %w", err)
			}
			res.Drafts++
		}

		if b.Settings != nil {
			st := *b.Settings
			st.UserID = userID
			if st.LogoKey != "" && !ownsKey(userID, st.LogoKey) {
				st.LogoKey = ""
			}
			if err := s.repomanager.Settings(tx).Upsert(ctx, &st); err != nil {
				return fmt.Errorf("error saving settings: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "backup imported", "user_id", userID, "clients", res.Clients, "jobs", res.Jobs)
	return res, nil
}
