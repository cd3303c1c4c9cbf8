package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/money"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

const (
	maxUpcomingEvents = 10

	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
	unknownClient  = "Desconhecido"
)

// Snapshot is the data the assistant reasons about.
type Snapshot struct {
	Jobs    []models.Job
	Clients []models.Client
	Events  []models.CalendarEvent
}

func systemPrompt(now time.Time) string {
	return "Você é um assistente de IA para o gigbook, uma plataforma de gestão para freelancers criativos.\n" +
		"Sua principal função é ajudar o usuário a analisar seus jobs, clientes, finanças e calendário com base nos dados fornecidos.\n" +
		"Seja conciso, direto e amigável. Use o formato de moeda R$ quando apropriado.\n" +
		"Responda em Português do Brasil.\n" +
		"Não invente informações que não estejam nos dados fornecidos.\n" +
		"Hoje é " + now.Format(dateLayout) + "."
}

func userPrompt(snap Snapshot, query string, now time.Time, f *money.Formatter) string {
	return formatSnapshot(snap, now, f) + "\nPergunta do Usuário: " + query
}

func formatSnapshot(snap Snapshot, now time.Time, f *money.Formatter) string {
	names := clientNames(snap.Clients)
	loc := now.Location()

	var b strings.Builder
	b.WriteString("Dados do gigbook:\n--- Jobs ---\n")
	jobs := liveJobs(snap.Jobs)
	if len(jobs) == 0 {
		b.WriteString("Nenhum job cadastrado.\n")
	}
	for _, j := range jobs {
		s := finance.Summarize(j)
		name, ok := names[j.ClientID]
		if !ok {
			name = unknownClient
		}
		fmt.Fprintf(&b, "Nome: %s, Cliente: %s, Valor Total: %s, Total Pago: %s, Saldo Restante: %s, Prazo: %s, Status: %s, Tipo: %s\n",
			j.Name, name, f.Format(j.Value), f.Format(s.TotalPaid), f.Format(s.Remaining),
			j.Deadline.In(loc).Format(dateLayout), j.Status, j.ServiceType)
	}

	b.WriteString("\n--- Clientes ---\n")
	if len(snap.Clients) == 0 {
		b.WriteString("Nenhum cliente cadastrado.\n")
	}
	paid := paidByClient(jobs)
	for _, c := range snap.Clients {
		company := c.Company
		if company == "" {
			company = "N/A"
		}
		fmt.Fprintf(&b, "Nome: %s, Empresa: %s, Email: %s, Total Faturado (pago): %s\n",
			c.Name, company, c.Email, f.Format(paid[c.ID]))
	}

	if len(snap.Events) > 0 {
		b.WriteString("\n--- Próximos Eventos do Calendário ---\n")
		upcoming := upcomingEvents(snap.Events, now)
		if len(upcoming) == 0 {
			b.WriteString("Nenhum evento futuro no calendário.\n")
		}
		for _, e := range upcoming {
			fmt.Fprintf(&b, "Evento: %s, Data: %s, Origem: %s\n",
				e.Title, e.Start.In(loc).Format(dateTimeLayout), e.Source)
		}
	}

	b.WriteString("---\n")
	return b.String()
}

func upcomingEvents(events []models.CalendarEvent, now time.Time) []models.CalendarEvent {
	out := make([]models.CalendarEvent, 0, len(events))
	for _, e := range events {
		if !e.Start.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	if len(out) > maxUpcomingEvents {
		out = out[:maxUpcomingEvents]
	}
	return out
}

func liveJobs(jobs []models.Job) []*models.Job {
	out := make([]*models.Job, 0, len(jobs))
	for i := range jobs {
		if !jobs[i].IsDeleted {
			out = append(out, &jobs[i])
		}
	}
	return out
}

func clientNames(clients []models.Client) map[string]string {
	out := make(map[string]string, len(clients))
	for _, c := range clients {
		out[c.ID] = c.Name
	}
	return out
}

func paidByClient(jobs []*models.Job) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, j := range jobs {
		out[j.ClientID] = out[j.ClientID].Add(finance.Summarize(j).TotalPaid)
	}
	return out
}
