package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

const msPerDay = 86_400_000

// AverageJobValue is the mean value of fully paid, non-deleted jobs, or zero
// when there are none.
func AverageJobValue(jobs []models.Job) decimal.Decimal {
	paid := paidJobs(jobs)
	if len(paid) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, j := range paid {
		sum = sum.Add(j.Value)
	}
	return sum.Div(decimal.NewFromInt(int64(len(paid))))
}

// AveragePaymentDays is the mean number of days from job creation to its
// latest payment over fully paid jobs. Jobs without a creation time, with
// any unreadable payment date, or whose latest payment predates creation
// are left out entirely.
func (a *Analyzer) AveragePaymentDays(jobs []models.Job) float64 {
	var total int64
	var n int64

	for _, j := range paidJobs(jobs) {
		if j.CreatedAt.IsZero() || len(j.Payments) == 0 {
			continue
		}
		latest, ok := a.latestPayment(j)
		if !ok {
			continue
		}
		span := latest.Sub(j.CreatedAt).Milliseconds()
		if span < 0 {
			continue
		}
		total += span
		n++
	}

	if n == 0 {
		return 0
	}
	return float64(total) / float64(n) / msPerDay
}

// latestPayment fails on the first unreadable date: the latest payment of
// such a job is unknown.
func (a *Analyzer) latestPayment(j *models.Job) (time.Time, bool) {
	var latest time.Time
	for i, p := range j.Payments {
		t, err := a.ParseDate(p.Date)
		if err != nil {
			a.skip(j.ID, p.ID, p.Date)
			return time.Time{}, false
		}
		if i == 0 || t.After(latest) {
			latest = t
		}
	}
	return latest, len(j.Payments) > 0
}
