package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/money"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

var (
	revenueWords = []string{"faturei", "faturamento", "recebi", "ganho", "revenue", "earned", "received", "income"}
	overdueWords = []string{"atrasado", "atrasados", "prazo", "overdue", "deadline", "late"}
	clientWords  = []string{"cliente", "client"}
	jobWords     = []string{"job", "projeto", "project"}
)

// KeywordResponder answers a few common questions without a language model.
type KeywordResponder struct {
	money *money.Formatter
}

func NewKeywordResponder(f *money.Formatter) *KeywordResponder {
	if f == nil {
		f = money.Default
	}
	return &KeywordResponder{money: f}
}

// Respond picks the first matching topic in the order revenue, overdue,
// clients, jobs.
func (k *KeywordResponder) Respond(query string, snap Snapshot, now time.Time) string {
	q := strings.ToLower(query)
	jobs := liveJobs(snap.Jobs)

	switch {
	case containsAny(q, revenueWords):
		return k.revenue(jobs)
	case containsAny(q, overdueWords):
		return overdue(jobs, now)
	case containsAny(q, clientWords):
		return k.clients(snap)
	case containsAny(q, jobWords):
		return jobCounts(jobs)
	}

	return fmt.Sprintf("Desculpe, não consegui processar sua pergunta %q. "+
		"Tente perguntar sobre seus jobs, clientes, faturamento ou prazos. "+
		"Por exemplo: \"Quanto eu faturei este mês?\" ou \"Quais jobs estão atrasados?\"", query)
}

func (k *KeywordResponder) revenue(jobs []*models.Job) string {
	total := decimal.Zero
	for _, j := range jobs {
		total = total.Add(finance.Summarize(j).TotalPaid)
	}
	return fmt.Sprintf("Com base nos dados disponíveis, você faturou um total de %s considerando todos os pagamentos recebidos.",
		k.money.Format(total))
}

func overdue(jobs []*models.Job, now time.Time) string {
	today := startOfDay(now)

	var lines []string
	for _, j := range jobs {
		if j.Deadline.IsZero() || !j.Deadline.Before(today) {
			continue
		}
		if j.Status == models.StatusPaid || j.Status == models.StatusFinalized {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s (%s)", j.Name, j.Deadline.In(now.Location()).Format(dateLayout)))
	}

	if len(lines) == 0 {
		return "Parabéns! Você não tem jobs atrasados no momento."
	}
	return fmt.Sprintf("Você tem %d job(s) atrasado(s):\n\n%s", len(lines), strings.Join(lines, "\n"))
}

func (k *KeywordResponder) clients(snap Snapshot) string {
	out := fmt.Sprintf("Você tem %d cliente(s) cadastrado(s).", len(snap.Clients))
	if top := finance.ClientRevenue(snap.Jobs, snap.Clients); len(top) > 0 {
		out += fmt.Sprintf(" Seu cliente que mais faturou é %s com %s.", top[0].Label, k.money.Format(top[0].Amount))
	}
	return out
}

func jobCounts(jobs []*models.Job) string {
	active, completed := 0, 0
	for _, j := range jobs {
		if j.Status == models.StatusPaid {
			completed++
		} else {
			active++
		}
	}
	return fmt.Sprintf("Você tem %d job(s) ativo(s) e %d job(s) concluído(s).", active, completed)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
