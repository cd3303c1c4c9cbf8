package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/dbx"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/clients"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/drafts"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/events"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/settings"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// ids hands out predictable ids per prefix.
type ids struct {
	mu sync.Mutex
	n  int
}

func (g *ids) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", prefix, g.n)
}

// --- users ---

type fakeUsersRepo struct {
	users.Repository
	mu      sync.Mutex
	ids     *ids
	byLogin map[string]*models.User
	err     error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byLogin[u.UserName]; ok {
		return nil, common.ErrAlreadyExists
	}
	cp := *u
	cp.ID = f.ids.next("u")
	f.byLogin[cp.UserName] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byLogin[login]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	refreshtokens.Repository
	mu        sync.Mutex
	tokens    map[string]models.RefreshToken
	findErr   error
	deleteErr error
	createErr error
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &t, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.tokens, token)
	return nil
}

// --- clients ---

type fakeClientsRepo struct {
	clients.Repository
	mu   sync.Mutex
	ids  *ids
	rows []models.Client
	err  error
}

func (f *fakeClientsRepo) Create(_ context.Context, c *models.Client) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c.ID = f.ids.next("c")
	f.rows = append(f.rows, *c)
	return c, nil
}

func (f *fakeClientsRepo) Update(_ context.Context, c *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == c.ID && f.rows[i].UserID == c.UserID {
			f.rows[i] = *c
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeClientsRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeClientsRepo) Get(_ context.Context, userID, id string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.rows {
		if c.ID == id && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeClientsRepo) List(_ context.Context, userID string) ([]models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Client
	for _, c := range f.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- jobs ---

type fakeJobsRepo struct {
	jobs.Repository
	mu      sync.Mutex
	ids     *ids
	rows    []models.Job
	err     error
	listErr error
}

func (f *fakeJobsRepo) find(userID, id string) *models.Job {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			return &f.rows[i]
		}
	}
	return nil
}

func (f *fakeJobsRepo) Create(_ context.Context, j *models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	j.ID = f.ids.next("j")
	f.rows = append(f.rows, *j)
	return j, nil
}

func (f *fakeJobsRepo) Update(_ context.Context, j *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.find(j.UserID, j.ID)
	if row == nil {
		return common.ErrNotFound
	}
	payments, eventID := row.Payments, row.CalendarEventID
	*row = *j
	row.Payments, row.CalendarEventID = payments, eventID
	return nil
}

func (f *fakeJobsRepo) SoftDelete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.find(userID, id)
	if row == nil {
		return common.ErrNotFound
	}
	row.IsDeleted = true
	return nil
}

func (f *fakeJobsRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeJobsRepo) Get(_ context.Context, userID, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.find(userID, id)
	if row == nil {
		return nil, common.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeJobsRepo) List(_ context.Context, userID string) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Job
	for _, j := range f.rows {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobsRepo) AppendPayment(_ context.Context, userID, jobID string, p models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.find(userID, jobID)
	if row == nil || row.IsDeleted {
		return common.ErrNotFound
	}
	row.Payments = append(row.Payments, p)
	return nil
}

func (f *fakeJobsRepo) SetCalendarEvent(_ context.Context, userID, jobID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.find(userID, jobID)
	if row == nil {
		return common.ErrNotFound
	}
	row.CalendarEventID = eventID
	return nil
}

// --- settings ---

type fakeSettingsRepo struct {
	settings.Repository
	mu     sync.Mutex
	rows   map[string]models.Settings
	getErr error
}

func (f *fakeSettingsRepo) Get(_ context.Context, userID string) (*models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	st, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &st, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *models.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[s.UserID] = *s
	return nil
}

// --- drafts ---

type fakeDraftsRepo struct {
	drafts.Repository
	mu   sync.Mutex
	ids  *ids
	rows []models.DraftNote
}

func (f *fakeDraftsRepo) Create(_ context.Context, d *models.DraftNote) (*models.DraftNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.ids.next("d")
	f.rows = append(f.rows, *d)
	return d, nil
}

func (f *fakeDraftsRepo) Update(_ context.Context, d *models.DraftNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == d.ID && f.rows[i].UserID == d.UserID {
			f.rows[i] = *d
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeDraftsRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeDraftsRepo) List(_ context.Context, userID string) ([]models.DraftNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DraftNote
	for _, d := range f.rows {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- events ---

type fakeEventsRepo struct {
	events.Repository
	mu       sync.Mutex
	ids      *ids
	rows     []models.CalendarEvent
	upcoming struct {
		from  time.Time
		limit int
	}
}

func (f *fakeEventsRepo) Create(_ context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.ids.next("e")
	f.rows = append(f.rows, *e)
	return e, nil
}

func (f *fakeEventsRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeEventsRepo) List(_ context.Context, userID string) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CalendarEvent
	for _, e := range f.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventsRepo) ListUpcoming(_ context.Context, userID string, from time.Time, limit int) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upcoming.from, f.upcoming.limit = from, limit
	var out []models.CalendarEvent
	for _, e := range f.rows {
		if e.UserID == userID && !e.Start.Before(from) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	users    *fakeUsersRepo
	tokens   *fakeRefreshRepo
	clients  *fakeClientsRepo
	jobs     *fakeJobsRepo
	settings *fakeSettingsRepo
	drafts   *fakeDraftsRepo
	events   *fakeEventsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	g := &ids{}
	return &fakeRepoManager{
		users:    &fakeUsersRepo{ids: g, byLogin: map[string]*models.User{}},
		tokens:   &fakeRefreshRepo{tokens: map[string]models.RefreshToken{}},
		clients:  &fakeClientsRepo{ids: g},
		jobs:     &fakeJobsRepo{ids: g},
		settings: &fakeSettingsRepo{rows: map[string]models.Settings{}},
		drafts:   &fakeDraftsRepo{ids: g},
		events:   &fakeEventsRepo{ids: g},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }
func (m *fakeRepoManager) Clients(dbx.DBTX) clients.Repository             { return m.clients }
func (m *fakeRepoManager) Jobs(dbx.DBTX) jobs.Repository                   { return m.jobs }
func (m *fakeRepoManager) Settings(dbx.DBTX) settings.Repository           { return m.settings }
func (m *fakeRepoManager) Drafts(dbx.DBTX) drafts.Repository               { return m.drafts }
func (m *fakeRepoManager) Events(dbx.DBTX) events.Repository               { return m.events }

// --- object store ---

type fakeStore struct {
	mu      sync.Mutex
	puts    map[string][]byte
	signed  []string
	signErr error
	putErr  error
}

func newFakeStore() *fakeStore { return &fakeStore{puts: map[string][]byte{}} }

func (f *fakeStore) PresignPut(_ context.Context, key, contentType string, size int64) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signed = append(f.signed, key)
	return fmt.Sprintf("https://s3.test/%s?put&type=%s&size=%d", key, contentType, size), nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://s3.test/" + key + "?get", nil
}

func (f *fakeStore) Put(_ context.Context, key, _ string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts[key] = data
	return nil
}

func fixedNow() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
