package finance

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// Summary is the payment position of a single job.
type Summary struct {
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Remaining   decimal.Decimal `json:"remaining"`
	IsFullyPaid bool            `json:"is_fully_paid"`
}

// Summarize adds up the job's payments. Overpayment is clamped, so Remaining
// is never negative. A nil job yields the zero Summary.
func Summarize(job *models.Job) Summary {
	if job == nil {
		return Summary{TotalPaid: decimal.Zero, Remaining: decimal.Zero}
	}

	paid := decimal.Zero
	for _, p := range job.Payments {
		paid = paid.Add(p.Amount)
	}

	remaining := job.Value.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Summary{
		TotalPaid:   paid,
		Remaining:   remaining,
		IsFullyPaid: remaining.IsZero() && job.Value.IsPositive(),
	}
}

// Summaries returns Summarize for every job keyed by job id.
func Summaries(jobs []models.Job) map[string]Summary {
	out := make(map[string]Summary, len(jobs))
	for i := range jobs {
		out[jobs[i].ID] = Summarize(&jobs[i])
	}
	return out
}

func isFullyPaid(job *models.Job) bool {
	return Summarize(job).IsFullyPaid
}

func activeJobs(jobs []models.Job) []*models.Job {
	out := make([]*models.Job, 0, len(jobs))
	for i := range jobs {
		if !jobs[i].IsDeleted {
			out = append(out, &jobs[i])
		}
	}
	return out
}

func paidJobs(jobs []models.Job) []*models.Job {
	active := activeJobs(jobs)
	out := active[:0]
	for _, j := range active {
		if isFullyPaid(j) {
			out = append(out, j)
		}
	}
	return out
}
