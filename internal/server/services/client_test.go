package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func newClientService(t *testing.T) (*ClientService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	return NewClientService(db, rm, logging.Nop{}), rm
}

func TestClientService_CreateNormalizes(t *testing.T) {
	s, rm := newClientService(t)

	c, err := s.Create(context.Background(), "u1", &models.Client{
		Name:  "  Acme ",
		Email: "ops@acme.test",
		TaxID: "123.456.789-09",
		// Creation time is the database's to stamp.
		CreatedAt: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, rm.clients.rows[0].CreatedAt.IsZero())
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "12345678909", c.TaxID)
	assert.Equal(t, "u1", c.UserID)
	assert.Len(t, rm.clients.rows, 1)
}

func TestClientService_Validation(t *testing.T) {
	s, _ := newClientService(t)

	tests := []struct {
		name   string
		client models.Client
		field  string
	}{
		{"missing name", models.Client{Email: "a@b.c"}, "name"},
		{"missing email", models.Client{Name: "A"}, "email"},
		{"bad email", models.Client{Name: "A", Email: "nope"}, "email"},
		{"short tax id", models.Client{Name: "A", Email: "a@b.c", TaxID: "123.456"}, "tax_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), "u1", &tt.client)
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestClientService_UpdateDeleteList(t *testing.T) {
	s, _ := newClientService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, "u1", &models.Client{Name: "A", Email: "a@b.c"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "u2", &models.Client{Name: "B", Email: "b@b.c"})
	require.NoError(t, err)

	c.Name = "A2"
	require.NoError(t, s.Update(ctx, "u1", c))
	got, err := s.Get(ctx, "u1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)

	assert.ErrorIs(t, s.Update(ctx, "u1", &models.Client{Name: "x", Email: "x@y.z"}), common.ErrValidation)
	assert.ErrorIs(t, s.Update(ctx, "u2", c), common.ErrNotFound)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, "u1", c.ID))
	assert.ErrorIs(t, s.Delete(ctx, "u1", c.ID), common.ErrNotFound)
	_, err = s.Get(ctx, "u1", c.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
