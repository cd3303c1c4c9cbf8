package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/client/services"
	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// offlineNote is printed under listings served from the local snapshot.
func (a *App) offlineNote(src services.Source, at time.Time) {
	if src != services.SourceCache {
		return
	}
	if at.IsZero() {
		fmt.Fprintln(a.out, "(offline, cached data)")
		return
	}
	fmt.Fprintf(a.out, "(offline, synced at %s)\n", at.In(a.loc).Format("2006-01-02 15:04"))
}

func (a *App) Clients(ctx context.Context) error {
	list, src, err := a.books.Clients(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No clients yet.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tEMAIL\tPHONE")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Company, c.Email, c.Phone)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.offlineNote(src, time.Time{})
	return nil
}

func (a *App) AddClient(ctx context.Context) error {
	var c models.Client
	var err error

	if c.Name, err = GetRequiredText(a.reader, "Client name", a.out); err != nil {
		return err
	}
	if c.Email, err = GetRequiredText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if c.Company, err = getSimpleText(a.reader, "Company (optional)", a.out); err != nil {
		return err
	}
	if c.Phone, err = getSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		return err
	}

	created, err := a.books.AddClient(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Client %s added (id %s)\n", created.Name, created.ID)
	return nil
}

func (a *App) Jobs(ctx context.Context) error {
	views, src, err := a.books.Jobs(ctx)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No jobs yet.")
		return nil
	}

	now := time.Now()
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tSERVICE\tSTATUS\tDEADLINE\tVALUE\tPAID\tREMAINING\tFINANCIAL")
	for i := range views {
		j := &views[i].Job
		s := views[i].Summary
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Name, j.ServiceType, j.Status, j.Deadline.Format("2006-01-02"),
			a.money.Format(j.Value), a.money.Format(s.TotalPaid), a.money.Format(s.Remaining),
			finance.FinancialStatusOf(j, now))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.offlineNote(src, time.Time{})
	return nil
}

// choose prints numbered options and reads a 1-based pick. An empty
// answer returns def.
func (a *App) choose(prompt string, options []string, def int) (int, error) {
	for i, o := range options {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, o)
	}
	for {
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return 0, err
		}
		if s == "" && def >= 0 {
			return def, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(a.out, "Pick a number between 1 and %d.\n", len(options))
	}
}

func (a *App) AddJob(ctx context.Context) error {
	clients, _, err := a.books.Clients(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(a.out, "Add a client first.")
		return nil
	}

	var j models.Job
	if j.Name, err = GetRequiredText(a.reader, "Job name", a.out); err != nil {
		return err
	}

	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	idx, err := a.choose("Client", names, -1)
	if err != nil {
		return err
	}
	j.ClientID = clients[idx].ID

	types := models.AllServiceTypes()
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = t.String()
	}
	idx, err = a.choose("Service type (empty for other)", labels, len(types)-1)
	if err != nil {
		return err
	}
	j.ServiceType = types[idx]

	statuses := models.AllJobStatuses()
	labels = make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = s.String()
	}
	idx, err = a.choose("Status (empty for briefing)", labels, 0)
	if err != nil {
		return err
	}
	j.Status = statuses[idx]

	if j.Value, err = a.requiredAmount("Value"); err != nil {
		return err
	}

	cost, err := GetAmount(a.reader, "Cost (optional)", a.out, decimal.Zero)
	if err != nil {
		return err
	}
	if !cost.IsZero() {
		j.Cost = decimal.NewNullDecimal(cost)
	}

	if j.Deadline, err = a.requiredDay("Deadline (YYYY-MM-DD or DD/MM/YYYY)"); err != nil {
		return err
	}
	if j.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	view, err := a.books.AddJob(ctx, j)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Job %s added (id %s)\n", view.Job.Name, view.Job.ID)
	return nil
}

func (a *App) requiredAmount(prompt string) (decimal.Decimal, error) {
	for {
		d, err := GetAmount(a.reader, prompt, a.out, decimal.Zero)
		if err != nil {
			return decimal.Zero, err
		}
		if d.IsPositive() {
			return d, nil
		}
		fmt.Fprintln(a.out, "The amount must be greater than zero.")
	}
}

func (a *App) requiredDay(prompt string) (time.Time, error) {
	for {
		s, err := GetRequiredText(a.reader, prompt, a.out)
		if err != nil {
			return time.Time{}, err
		}
		t, err := ParseDay(s, a.loc)
		if err == nil {
			return t, nil
		}
		fmt.Fprintln(a.out, "Invalid date, use YYYY-MM-DD or DD/MM/YYYY.")
	}
}

func (a *App) Pay(ctx context.Context, jobID string) error {
	var p models.Payment
	var err error

	if p.Amount, err = a.requiredAmount("Amount"); err != nil {
		return err
	}

	today := time.Now().In(a.loc).Format("2006-01-02")
	for {
		s, err := getSimpleText(a.reader, fmt.Sprintf("Date (empty for %s)", today), a.out)
		if err != nil {
			return err
		}
		if s == "" {
			p.Date = today
			break
		}
		d, err := ParseDay(s, a.loc)
		if err == nil {
			p.Date = d.Format("2006-01-02")
			break
		}
		fmt.Fprintln(a.out, "Invalid date, use YYYY-MM-DD or DD/MM/YYYY.")
	}

	if p.Method, err = getSimpleText(a.reader, "Method (optional, e.g. pix)", a.out); err != nil {
		return err
	}

	resp, err := a.books.AddPayment(ctx, jobID, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Payment of %s recorded\n", a.money.Format(resp.Payment.Amount))
	a.printSummary(resp.Summary)
	return nil
}

func (a *App) Summary(ctx context.Context, jobID string) error {
	s, err := a.books.Summary(ctx, jobID)
	if err != nil {
		return err
	}
	a.printSummary(s)
	return nil
}

func (a *App) printSummary(s finance.Summary) {
	state := "open"
	if s.IsFullyPaid {
		state = "fully paid"
	}
	fmt.Fprintf(a.out, "Paid: %s  Remaining: %s  (%s)\n",
		a.money.Format(s.TotalPaid), a.money.Format(s.Remaining), strings.ToUpper(state[:1])+state[1:])
}
