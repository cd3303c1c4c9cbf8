package finance

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

// Report is everything the performance dashboard renders.
type Report struct {
	Summaries          map[string]Summary `json:"summaries"`
	Monthly            []MonthBucket      `json:"monthly"`
	ClientRevenue      []Ranked           `json:"client_revenue"`
	ServiceRevenue     []Ranked           `json:"service_revenue"`
	ServiceCosts       []Ranked           `json:"service_costs"`
	AverageJobValue    decimal.Decimal    `json:"average_job_value"`
	AveragePaymentDays float64            `json:"average_payment_days"`
}

func (a *Analyzer) Report(jobs []models.Job, clients []models.Client) Report {
	return Report{
		Summaries:          Summaries(jobs),
		Monthly:            a.Monthly(jobs),
		ClientRevenue:      ClientRevenue(jobs, clients),
		ServiceRevenue:     ServiceRevenue(jobs),
		ServiceCosts:       ServiceCosts(jobs),
		AverageJobValue:    AverageJobValue(jobs),
		AveragePaymentDays: a.AveragePaymentDays(jobs),
	}
}
