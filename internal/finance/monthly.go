package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

const monthsShown = 12

// MonthBucket is one month of the performance series.
type MonthBucket struct {
	Key           string          `json:"key"`
	Label         string          `json:"label"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	CompletedJobs int             `json:"completed_jobs"`
}

type monthAcc struct {
	revenue decimal.Decimal
	jobIDs  []string
	seen    map[string]struct{}
}

// Monthly buckets every payment of non-deleted jobs by the calendar month of
// its date and returns the latest twelve months in ascending order.
//
// A month's cost is the sum of costs of the jobs that received a payment in
// it and are fully paid today. A job paid across several months therefore
// counts its cost once in each of those months.
func (a *Analyzer) Monthly(jobs []models.Job) []MonthBucket {
	byKey := map[string]*monthAcc{}
	jobsByID := map[string]*models.Job{}

	for _, job := range activeJobs(jobs) {
		jobsByID[job.ID] = job
		for _, p := range job.Payments {
			t, err := a.ParseDate(p.Date)
			if err != nil {
				a.skip(job.ID, p.ID, p.Date)
				continue
			}
			key := t.Format("2006-01")
			acc, ok := byKey[key]
			if !ok {
				acc = &monthAcc{revenue: decimal.Zero, seen: map[string]struct{}{}}
				byKey[key] = acc
			}
			acc.revenue = acc.revenue.Add(p.Amount)
			if _, dup := acc.seen[job.ID]; !dup {
				acc.seen[job.ID] = struct{}{}
				acc.jobIDs = append(acc.jobIDs, job.ID)
			}
		}
	}

	out := make([]MonthBucket, 0, len(byKey))
	for key, acc := range byKey {
		cost := decimal.Zero
		for _, id := range acc.jobIDs {
			if j := jobsByID[id]; isFullyPaid(j) {
				cost = cost.Add(j.CostOrZero())
			}
		}
		out = append(out, MonthBucket{
			Key:           key,
			Label:         monthLabel(key),
			Revenue:       acc.revenue,
			Cost:          cost,
			Profit:        acc.revenue.Sub(cost),
			CompletedJobs: len(acc.jobIDs),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	if len(out) > monthsShown {
		out = out[len(out)-monthsShown:]
	}
	return out
}

var shortMonths = [12]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// monthLabel renders "2024-03" as "mar. de 24".
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s de %02d", shortMonths[t.Month()-1], t.Year()%100)
}
