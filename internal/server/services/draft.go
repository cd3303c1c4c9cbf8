package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
)

type DraftService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDraftService(db *sql.DB, m repomanager.RepositoryManager) *DraftService {
	return &DraftService{db: db, repomanager: m}
}

func prepareDraft(userID string, d *models.DraftNote) error {
	d.UserID = userID
	d.Title = strings.TrimSpace(d.Title)
	if d.Type == "" {
		d.Type = models.DraftText
	}

	var v checks
	v.required("title", d.Title)
	if _, err := models.ParseDraftType(string(d.Type)); err != nil {
		v.fail("type", err.Error())
	}
	for i := range d.ScriptLines {
		l := &d.ScriptLines[i]
		if l.DurationSeconds < 0 {
			v.fail("script_lines", "duration must not be negative")
		}
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
	}
	for i := range d.Attachments {
		a := &d.Attachments[i]
		if !ownsKey(userID, a.StorageKey) {
			v.fail("attachments", "unknown storage key")
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
	}
	if d.Type == models.DraftText {
		d.ScriptLines = nil
	}
	return v.err
}

// Save creates the draft when it has no id and updates it otherwise.
func (s *DraftService) Save(ctx context.Context, userID string, d *models.DraftNote) (*models.DraftNote, error) {
	if err := prepareDraft(userID, d); err != nil {
		return nil, err
	}

	repo := s.repomanager.Drafts(s.db)
	if d.ID == "" {
		d.CreatedAt = time.Time{}
		out, err := repo.Create(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("error creating draft: %w", err)
		}
		return out, nil
	}
	if err := repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("error updating draft: %w", err)
	}
	return d, nil
}

func (s *DraftService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return common.Invalid("id", "required")
	}
	if err := s.repomanager.Drafts(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting draft: %w", err)
	}
	return nil
}

func (s *DraftService) List(ctx context.Context, userID string) ([]models.DraftNote, error) {
	list, err := s.repomanager.Drafts(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing drafts: %w", err)
	}
	return list, nil
}
