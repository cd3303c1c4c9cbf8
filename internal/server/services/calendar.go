package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

const (
	defaultUpcomingLimit = 10
	defaultEventLength   = time.Hour
)

type CalendarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewCalendarService(db *sql.DB, m repomanager.RepositoryManager) *CalendarService {
	return &CalendarService{db: db, repomanager: m, now: time.Now}
}

func (s *CalendarService) List(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	list, err := s.repomanager.Events(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return list, nil
}

// Upcoming returns events starting from now. A non-positive limit means the
// default of ten.
func (s *CalendarService) Upcoming(ctx context.Context, userID string, limit int) ([]models.CalendarEvent, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	list, err := s.repomanager.Events(s.db).ListUpcoming(ctx, userID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return list, nil
}

func (s *CalendarService) Create(ctx context.Context, userID string, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	e.UserID = userID
	e.Title = strings.TrimSpace(e.Title)
	if e.Source == "" {
		e.Source = models.EventSourceLocal
	}

	var v checks
	v.required("title", e.Title)
	if e.Start.IsZero() {
		v.fail("start", "required")
	}
	if e.Source != models.EventSourceLocal && e.Source != models.EventSourceGoogle {
		v.fail("source", "unknown source")
	}
	if v.err != nil {
		return nil, v.err
	}

	if e.End.IsZero() {
		if e.AllDay {
			e.End = e.Start.AddDate(0, 0, 1)
		} else {
			e.End = e.Start.Add(defaultEventLength)
		}
	}
	if e.End.Before(e.Start) {
		return nil, common.Invalid("end", "must not be before start")
	}

	out, err := s.repomanager.Events(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	return out, nil
}

func (s *CalendarService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Events(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	return nil
}
