package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func newDraftService(t *testing.T) (*DraftService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	return NewDraftService(db, rm), rm
}

func TestDraftService_SaveCreatesThenUpdates(t *testing.T) {
	s, rm := newDraftService(t)
	ctx := context.Background()

	d, err := s.Save(ctx, "u1", &models.DraftNote{
		Title: " Teaser ",
		Type:  models.DraftScript,
		ScriptLines: []models.ScriptLine{
			{Scene: "Open", DurationSeconds: 5},
		},
		Attachments: []models.Attachment{{Name: "ref.png", StorageKey: "users/u1/2025/03/10/a"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "Teaser", d.Title)
	assert.NotEmpty(t, d.ScriptLines[0].ID)
	assert.NotEmpty(t, d.Attachments[0].ID)

	d.Content = "updated"
	_, err = s.Save(ctx, "u1", d)
	require.NoError(t, err)
	require.Len(t, rm.drafts.rows, 1)
	assert.Equal(t, "updated", rm.drafts.rows[0].Content)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, "u1", d.ID))
	assert.ErrorIs(t, s.Delete(ctx, "u1", d.ID), common.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "u1", ""), common.ErrValidation)
}

func TestDraftService_TextDropsScriptLines(t *testing.T) {
	s, _ := newDraftService(t)
	d, err := s.Save(context.Background(), "u1", &models.DraftNote{
		Title:       "Notes",
		ScriptLines: []models.ScriptLine{{Scene: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DraftText, d.Type)
	assert.Nil(t, d.ScriptLines)
}

func TestDraftService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft models.DraftNote
		field string
	}{
		{"title", models.DraftNote{}, "title"},
		{"type", models.DraftNote{Title: "a", Type: "video"}, "type"},
		{"duration", models.DraftNote{Title: "a", Type: models.DraftScript,
			ScriptLines: []models.ScriptLine{{DurationSeconds: -1}}}, "script_lines"},
		{"foreign attachment", models.DraftNote{Title: "a",
			Attachments: []models.Attachment{{StorageKey: "users/u2/k"}}}, "attachments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newDraftService(t)
			_, err := s.Save(context.Background(), "u1", &tt.draft)
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
