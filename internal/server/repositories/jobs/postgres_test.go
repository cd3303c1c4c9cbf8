package jobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{
	"id", "name", "client_id", "service_type", "value", "cost", "deadline", "status",
	"cloud_links", "notes", "observations", "is_deleted", "payments",
	"create_calendar_event", "calendar_event_id", "is_recurring", "created_at", "updated_at",
}

func jobRow(rows *sqlmock.Rows, id string, cost any, payments string) *sqlmock.Rows {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Wedding film", "c1", "video", "1500.00", cost, now.AddDate(0, 1, 0), "production",
		`["https://drive.example/x"]`, "", nil, false, []byte(payments),
		false, "", false, now, now)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+jobs\s*\(user_id,.*RETURNING\s+id,\s*created_at,\s*updated_at$`).
		WithArgs("u1", "Logo", "c1", "design", "300", sqlmock.AnyArg(), sqlmock.AnyArg(), "briefing",
			"[]", "", "[]", "[]", false, "", false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("j1", now, now))

	j, err := repo.Create(context.Background(), &models.Job{
		UserID: "u1", Name: "Logo", ClientID: "c1", ServiceType: models.ServiceDesign,
		Value: decimal.NewFromInt(300), Deadline: now, Status: models.StatusBriefing,
	})
	require.NoError(t, err)
	assert.Equal(t, "j1", j.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_DecodesJSONColumns(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^SELECT\s+id,\s*name,.*FROM\s+jobs\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2$`
	mock.ExpectQuery(q).WithArgs("u1", "j1").
		WillReturnRows(jobRow(sqlmock.NewRows(cols), "j1", "200.50",
			`[{"id":"p1","amount":"500","date":"2024-01-10"},{"id":"p2","amount":250.5,"date":"2024-02-10","method":"pix"}]`))

	j, err := repo.Get(context.Background(), "u1", "j1")
	require.NoError(t, err)

	assert.Equal(t, models.ServiceVideo, j.ServiceType)
	assert.Equal(t, models.StatusProduction, j.Status)
	assert.True(t, j.Value.Equal(decimal.RequireFromString("1500")))
	require.True(t, j.Cost.Valid)
	assert.True(t, j.Cost.Decimal.Equal(decimal.RequireFromString("200.5")))
	assert.Equal(t, []string{"https://drive.example/x"}, j.CloudLinks)
	assert.Nil(t, j.Observations)
	require.Len(t, j.Payments, 2)
	assert.Equal(t, "pix", j.Payments[1].Method)
	assert.True(t, j.Payments[1].Amount.Equal(decimal.RequireFromString("250.5")))
}

func TestGet_NullCostAndNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `FROM\s+jobs\s+WHERE\s+user_id`

	mock.ExpectQuery(q).WithArgs("u1", "j1").
		WillReturnRows(jobRow(sqlmock.NewRows(cols), "j1", nil, `[]`))
	mock.ExpectQuery(q).WithArgs("u1", "zz").WillReturnError(sql.ErrNoRows)

	j, err := repo.Get(context.Background(), "u1", "j1")
	require.NoError(t, err)
	assert.False(t, j.Cost.Valid)
	assert.Empty(t, j.Payments)

	_, err = repo.Get(context.Background(), "u1", "zz")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(cols)
	jobRow(rows, "j2", nil, `[]`)
	jobRow(rows, "j1", "10", `[{"id":"p","amount":"1","date":"2024-01-01"}]`)
	mock.ExpectQuery(`(?s)FROM\s+jobs\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`).
		WithArgs("u1").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "j2", got[0].ID)
	assert.Len(t, got[1].Payments, 1)
}

func TestList_BadJSON(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+jobs`).WithArgs("u1").
		WillReturnRows(jobRow(sqlmock.NewRows(cols), "j1", nil, `{oops`))

	_, err := repo.List(context.Background(), "u1")
	assert.ErrorContains(t, err, "scan error")
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^UPDATE\s+jobs\s+SET\s+name\s*=\s*\$3.*WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2$`

	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

	j := &models.Job{UserID: "u1", ID: "j1", Name: "x", ServiceType: models.ServiceOther, Status: models.StatusOther}
	require.NoError(t, repo.Update(context.Background(), j))
	assert.ErrorIs(t, repo.Update(context.Background(), j), common.ErrNotFound)
}

func TestSoftDeleteAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+jobs\s+SET\s+is_deleted\s*=\s*true`).WithArgs("u1", "j1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+jobs`).WithArgs("u1", "j1").
		WillReturnError(errors.New("fk"))

	require.NoError(t, repo.SoftDelete(context.Background(), "u1", "j1"))
	assert.ErrorContains(t, repo.Delete(context.Background(), "u1", "j1"), "db error: fk")
}

func TestAppendPayment(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^UPDATE\s+jobs\s+SET\s+payments\s*=\s*payments\s*\|\|\s*\$3::jsonb.*AND\s+NOT\s+is_deleted$`

	p := models.Payment{ID: "p1", Amount: decimal.RequireFromString("99.90"), Date: "2024-03-01"}
	mock.ExpectExec(q).
		WithArgs("u1", "j1", `[{"id":"p1","amount":"99.9","date":"2024-03-01"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("u1", "gone", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AppendPayment(context.Background(), "u1", "j1", p))
	assert.ErrorIs(t, repo.AppendPayment(context.Background(), "u1", "gone", p), common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCalendarEvent(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`(?s)^UPDATE\s+jobs\s+SET\s+calendar_event_id`).WithArgs("u1", "j1", "e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetCalendarEvent(context.Background(), "u1", "j1", "e1"))
}
