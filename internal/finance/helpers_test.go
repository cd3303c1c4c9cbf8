package finance

import (
	"context"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func pay(amount, date string) models.Payment {
	return models.Payment{ID: "p-" + date, Amount: d(amount), Date: date}
}

func job(id string, value string, payments ...models.Payment) models.Job {
	return models.Job{
		ID:          id,
		Name:        id,
		ServiceType: models.ServiceVideo,
		Value:       d(value),
		Payments:    payments,
		Status:      models.StatusProduction,
	}
}

func withCost(j models.Job, cost string) models.Job {
	j.Cost = decimal.NewNullDecimal(d(cost))
	return j
}

type warnRecorder struct {
	logging.Nop
	mu    sync.Mutex
	warns []string
}

func (w *warnRecorder) Warn(_ context.Context, msg string, _ ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warns = append(w.warns, msg)
}

func (w *warnRecorder) With(...any) logging.Logger { return w }

func newTestAnalyzer() (*Analyzer, *warnRecorder) {
	rec := &warnRecorder{}
	return NewAnalyzer(rec, time.UTC), rec
}
