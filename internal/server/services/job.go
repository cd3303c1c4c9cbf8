package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/dbx"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

const deadlineEventPrefix = "Prazo: "

// JobService manages jobs, their payments and the calendar events that
// mirror job deadlines.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	analyzer    *finance.Analyzer
	log         logging.Logger
	now         func() time.Time
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager, a *finance.Analyzer, log logging.Logger) *JobService {
	return &JobService{
		db:          db,
		repomanager: m,
		analyzer:    a,
		log:         log.With("module", "jobs"),
		now:         time.Now,
	}
}

func normalizeJob(j *models.Job) {
	j.Name = strings.TrimSpace(j.Name)
	j.ClientID = strings.TrimSpace(j.ClientID)

	links := make([]string, 0, len(j.CloudLinks))
	for _, l := range j.CloudLinks {
		if l = strings.TrimSpace(l); l != "" {
			links = append(links, l)
		}
	}
	j.CloudLinks = links

	if j.Status == "" {
		j.Status = models.StatusBriefing
	}
	if j.ServiceType == "" {
		j.ServiceType = models.ServiceOther
	}
}

func (s *JobService) validateJob(ctx context.Context, db dbx.DBTX, userID string, j *models.Job) error {
	var v checks
	v.required("name", j.Name)
	v.required("client_id", j.ClientID)
	if j.Deadline.IsZero() {
		v.fail("deadline", "required")
	}
	v.nonNegative("value", j.Value)
	if j.Cost.Valid {
		v.nonNegative("cost", j.Cost.Decimal)
	}
	if _, err := models.ParseServiceType(string(j.ServiceType)); err != nil {
		v.fail("service_type", err.Error())
	}
	if _, err := models.ParseJobStatus(string(j.Status)); err != nil {
		v.fail("status", err.Error())
	}
	if v.err != nil {
		return v.err
	}

	if _, err := s.repomanager.Clients(db).Get(ctx, userID, j.ClientID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Invalid("client_id", "unknown client")
		}
		return fmt.Errorf("error loading client: %w", err)
	}
	return nil
}

func (s *JobService) preparePayment(p *models.Payment) error {
	if p.Amount.IsNegative() {
		return common.Invalid("amount", "must not be negative")
	}
	p.Date = strings.TrimSpace(p.Date)
	if p.Date == "" {
		p.Date = s.now().In(s.analyzer.Location()).Format(time.RFC3339)
	}
	if _, err := s.analyzer.ParseDate(p.Date); err != nil {
		return common.Invalid("date", "unrecognized date")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Create stores the job and, when CreateCalendarEvent is set, an all-day
// local event on the deadline.
func (s *JobService) Create(ctx context.Context, userID string, j *models.Job) (*models.Job, error) {
	normalizeJob(j)
	j.UserID = userID
	j.IsDeleted = false
	j.CalendarEventID = ""
	j.CreatedAt = time.Time{}

	var created *models.Job
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.validateJob(ctx, tx, userID, j); err != nil {
			return err
		}
		for i := range j.Payments {
			if err := s.preparePayment(&j.Payments[i]); err != nil {
				return err
			}
		}

		var err error
		created, err = s.repomanager.Jobs(tx).Create(ctx, j)
		if err != nil {
			return fmt.Errorf("error creating job: %w", err)
		}
		if created.CreateCalendarEvent {
			return s.attachDeadlineEvent(ctx, tx, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "job created", "user_id", userID, "job_id", created.ID)
	return created, nil
}

// Update rewrites the editable fields and keeps the deadline event in step
// with CreateCalendarEvent and the deadline.
func (s *JobService) Update(ctx context.Context, userID string, j *models.Job) error {
	if j.ID == "" {
		return common.Invalid("id", "required")
	}
	normalizeJob(j)
	j.UserID = userID

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		jobs := s.repomanager.Jobs(tx)
		existing, err := jobs.Get(ctx, userID, j.ID)
		if err != nil {
			return fmt.Errorf("error loading job: %w", err)
		}
		if err := s.validateJob(ctx, tx, userID, j); err != nil {
			return err
		}
		if err := jobs.Update(ctx, j); err != nil {
			return fmt.Errorf("error updating job: %w", err)
		}

		j.CalendarEventID = existing.CalendarEventID
		hadEvent := existing.CalendarEventID != ""
		moved := !existing.Deadline.Equal(j.Deadline)

		if hadEvent && (!j.CreateCalendarEvent || moved) {
			if err := s.detachDeadlineEvent(ctx, tx, j); err != nil {
				return err
			}
		}
		if j.CreateCalendarEvent && j.CalendarEventID == "" {
			return s.attachDeadlineEvent(ctx, tx, j)
		}
		return nil
	})
}

func (s *JobService) SoftDelete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Jobs(s.db).SoftDelete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	return nil
}

// Delete removes the job and its deadline event for good.
func (s *JobService) Delete(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		jobs := s.repomanager.Jobs(tx)
		j, err := jobs.Get(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("error loading job: %w", err)
		}
		if err := jobs.Delete(ctx, userID, id); err != nil {
			return fmt.Errorf("error deleting job: %w", err)
		}
		if j.CalendarEventID != "" {
			err := s.repomanager.Events(tx).Delete(ctx, userID, j.CalendarEventID)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("error deleting event: %w", err)
			}
		}
		return nil
	})
}

func (s *JobService) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	j, err := s.repomanager.Jobs(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error loading job: %w", err)
	}
	return j, nil
}

// List returns jobs newest first. Soft-deleted jobs are included only when
// withDeleted is set.
func (s *JobService) List(ctx context.Context, userID string, withDeleted bool) ([]models.Job, error) {
	list, err := s.repomanager.Jobs(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	if withDeleted {
		return list, nil
	}
	out := list[:0]
	for _, j := range list {
		if !j.IsDeleted {
			out = append(out, j)
		}
	}
	return out, nil
}

// AddPayment appends a payment. An empty date means now.
func (s *JobService) AddPayment(ctx context.Context, userID, jobID string, p models.Payment) (*models.Payment, error) {
	p.ID = ""
	if err := s.preparePayment(&p); err != nil {
		return nil, err
	}
	if err := s.repomanager.Jobs(s.db).AppendPayment(ctx, userID, jobID, p); err != nil {
		return nil, fmt.Errorf("error adding payment: %w", err)
	}
	s.log.Info(ctx, "payment added", "user_id", userID, "job_id", jobID, "payment_id", p.ID)
	return &p, nil
}

func (s *JobService) Summary(ctx context.Context, userID, jobID string) (finance.Summary, error) {
	j, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Summarize(j), nil
}

func (s *JobService) attachDeadlineEvent(ctx context.Context, tx dbx.DBTX, j *models.Job) error {
	y, m, d := j.Deadline.In(s.analyzer.Location()).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.analyzer.Location())

	ev, err := s.repomanager.Events(tx).Create(ctx, &models.CalendarEvent{
		UserID: j.UserID,
		Title:  deadlineEventPrefix + j.Name,
		Start:  start,
		End:    start.AddDate(0, 0, 1),
		AllDay: true,
		Source: models.EventSourceLocal,
		JobID:  j.ID,
	})
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	if err := s.repomanager.Jobs(tx).SetCalendarEvent(ctx, j.UserID, j.ID, ev.ID); err != nil {
		return fmt.Errorf("error linking event: %w", err)
	}
	j.CalendarEventID = ev.ID
	return nil
}

func (s *JobService) detachDeadlineEvent(ctx context.Context, tx dbx.DBTX, j *models.Job) error {
	err := s.repomanager.Events(tx).Delete(ctx, j.UserID, j.CalendarEventID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if err := s.repomanager.Jobs(tx).SetCalendarEvent(ctx, j.UserID, j.ID, ""); err != nil {
		return fmt.Errorf("error unlinking event: %w", err)
	}
	j.CalendarEventID = ""
	return nil
}
