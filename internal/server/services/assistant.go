package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/assistant"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

const maxQueryLength = 2000

// Answerer is satisfied by *assistant.Assistant.
type Answerer interface {
	Answer(ctx context.Context, query string, snap assistant.Snapshot) string
}

type AssistantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	answerer    Answerer
	now         func() time.Time
}

func NewAssistantService(db *sql.DB, m repomanager.RepositoryManager, a Answerer) *AssistantService {
	return &AssistantService{db: db, repomanager: m, answerer: a, now: time.Now}
}

func (s *AssistantService) Ask(ctx context.Context, userID, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", common.Invalid("query", "required")
	}
	if len(query) > maxQueryLength {
		return "", common.Invalid("query", fmt.Sprintf("must not exceed %d bytes", maxQueryLength))
	}

	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.answerer.Answer(ctx, query, *snap), nil
}

func (s *AssistantService) snapshot(ctx context.Context, userID string) (*assistant.Snapshot, error) {
	var snap assistant.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if snap.Jobs, err = s.repomanager.Jobs(s.db).List(gctx, userID); err != nil {
			return fmt.Errorf("error listing jobs: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Clients, err = s.repomanager.Clients(s.db).List(gctx, userID); err != nil {
			return fmt.Errorf("error listing clients: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		snap.Events, err = s.repomanager.Events(s.db).ListUpcoming(gctx, userID, s.now(), defaultUpcomingLimit)
		if err != nil {
			return fmt.Errorf("error listing events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
