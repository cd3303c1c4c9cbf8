package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

const topClients = 5

// Ranked is one row of a ranking. Key is the client id or service type,
// Label its display name.
type Ranked struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ClientRevenue ranks clients by what they have paid across non-deleted
// jobs and keeps the top five.
func ClientRevenue(jobs []models.Job, clients []models.Client) []Ranked {
	paidByClient := map[string]decimal.Decimal{}
	for _, j := range activeJobs(jobs) {
		paidByClient[j.ClientID] = paidByClient[j.ClientID].Add(Summarize(j).TotalPaid)
	}

	rows := make([]Ranked, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, Ranked{Key: c.ID, Label: c.Name, Amount: paidByClient[c.ID]})
	}

	rows = rankPositive(rows)
	if len(rows) > topClients {
		rows = rows[:topClients]
	}
	return rows
}

// ServiceRevenue ranks service types by amount paid on non-deleted jobs.
func ServiceRevenue(jobs []models.Job) []Ranked {
	return byService(activeJobs(jobs), func(j *models.Job) decimal.Decimal {
		return Summarize(j).TotalPaid
	})
}

// ServiceCosts ranks service types by the cost of fully paid jobs.
func ServiceCosts(jobs []models.Job) []Ranked {
	return byService(paidJobs(jobs), (*models.Job).CostOrZero)
}

func byService(jobs []*models.Job, amount func(*models.Job) decimal.Decimal) []Ranked {
	sums := map[models.ServiceType]decimal.Decimal{}
	for _, j := range jobs {
		sums[j.ServiceType] = sums[j.ServiceType].Add(amount(j))
	}

	rows := make([]Ranked, 0, len(sums))
	for _, st := range models.AllServiceTypes() {
		rows = append(rows, Ranked{Key: string(st), Label: st.Label(), Amount: sums[st]})
	}
	return rankPositive(rows)
}

// rankPositive drops non-positive rows and sorts the rest descending,
// keeping input order for ties.
func rankPositive(rows []Ranked) []Ranked {
	out := rows[:0]
	for _, r := range rows {
		if r.Amount.IsPositive() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
