package assistant

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type fakeCompleter struct {
	name   string
	text   string
	err    error
	calls  int
	system string
	prompt string
}

func (f *fakeCompleter) Name() string { return f.name }

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.system, f.prompt = system, prompt
	return f.text, f.err
}

func testSnapshot() Snapshot {
	return Snapshot{
		Clients: []models.Client{
			{ID: "c1", Name: "Acme", Email: "ops@acme.test", Company: "Acme Ltda"},
			{ID: "c2", Name: "Beta", Email: "hi@beta.test"},
		},
		Jobs: []models.Job{
			{
				ID: "j1", Name: "Launch video", ClientID: "c1",
				ServiceType: models.ServiceVideo, Status: models.StatusProduction,
				Value:    decimal.NewFromInt(1000),
				Deadline: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
				Payments: []models.Payment{{ID: "p1", Amount: decimal.NewFromInt(400), Date: "2025-02-01"}},
			},
			{
				ID: "j2", Name: "Logo", ClientID: "c2",
				ServiceType: models.ServiceDesign, Status: models.StatusPaid,
				Value:    decimal.NewFromInt(300),
				Deadline: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
				Payments: []models.Payment{{ID: "p2", Amount: decimal.NewFromInt(300), Date: "2025-01-20"}},
			},
			{
				ID: "j3", Name: "Deleted site", ClientID: "c2", IsDeleted: true,
				ServiceType: models.ServiceSites, Status: models.StatusBriefing,
				Value:    decimal.NewFromInt(5000),
				Deadline: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
				Payments: []models.Payment{{ID: "p3", Amount: decimal.NewFromInt(5000), Date: "2025-01-02"}},
			},
		},
	}
}
