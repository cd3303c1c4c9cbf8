package finance

import (
	"time"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// FinancialStatusOf classifies a job for the receivables view.
func FinancialStatusOf(job *models.Job, now time.Time) models.FinancialStatus {
	s := Summarize(job)
	switch {
	case s.IsFullyPaid:
		return models.FinancialPaid
	case job != nil && !job.Deadline.IsZero() && job.Deadline.Before(now):
		return models.FinancialOverdue
	case s.TotalPaid.IsPositive():
		return models.FinancialPartiallyPaid
	case job != nil && job.Status == models.StatusFinalized:
		return models.FinancialPendingFullPayment
	default:
		return models.FinancialPendingDeposit
	}
}

// FinancialRecord is a job row of the receivables listing.
type FinancialRecord struct {
	Job        models.Job             `json:"job"`
	ClientName string                 `json:"client_name,omitempty"`
	Summary    Summary                `json:"summary"`
	Status     models.FinancialStatus `json:"financial_status"`
}

// Records builds the receivables listing for non-deleted jobs, in input
// order.
func Records(jobs []models.Job, clients []models.Client, now time.Time) []FinancialRecord {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	active := activeJobs(jobs)
	out := make([]FinancialRecord, 0, len(active))
	for _, j := range active {
		out = append(out, FinancialRecord{
			Job:        *j,
			ClientName: names[j.ClientID],
			Summary:    Summarize(j),
			Status:     FinancialStatusOf(j, now),
		})
	}
	return out
}
