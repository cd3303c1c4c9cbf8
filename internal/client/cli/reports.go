package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gigbook/internal/finance"
)

func (a *App) Report(ctx context.Context) error {
	res, err := a.books.Report(ctx)
	if err != nil {
		return err
	}
	r := res.Report

	fmt.Fprintf(a.out, "Average job value: %s\n", a.money.Format(r.AverageJobValue))
	fmt.Fprintf(a.out, "Average days to payment: %.1f\n", r.AveragePaymentDays)

	if len(r.Monthly) > 0 {
		fmt.Fprintln(a.out, "\nMonthly")
		tw := newTable(a.out)
		fmt.Fprintln(tw, "MONTH\tREVENUE\tCOST\tPROFIT\tJOBS")
		for _, m := range r.Monthly {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", m.Label,
				a.money.Format(m.Revenue), a.money.Format(m.Cost), a.money.Format(m.Profit), m.CompletedJobs)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, sec := range []struct {
		title string
		rows  []finance.Ranked
	}{
		{"Top clients", r.ClientRevenue},
		{"Revenue by service", r.ServiceRevenue},
		{"Costs by service", r.ServiceCosts},
	} {
		if len(sec.rows) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "\n%s\n", sec.title)
		tw := newTable(a.out)
		for i, row := range sec.rows {
			fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, row.Label, a.money.Format(row.Amount))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	a.offlineNote(res.Source, res.SyncedAt)
	return nil
}

func (a *App) Receivables(ctx context.Context) error {
	res, err := a.books.Receivables(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "JOB\tCLIENT\tDEADLINE\tREMAINING\tSTATUS")
	n := 0
	for _, rec := range res.Records {
		if rec.Summary.IsFullyPaid {
			continue
		}
		n++
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rec.Job.Name, rec.ClientName,
			rec.Job.Deadline.Format("2006-01-02"), a.money.Format(rec.Summary.Remaining), rec.Status)
	}
	if n == 0 {
		fmt.Fprintln(a.out, "Nothing to receive.")
	} else if err := tw.Flush(); err != nil {
		return err
	}

	a.offlineNote(res.Source, res.SyncedAt)
	return nil
}

func (a *App) Ask(ctx context.Context, query string) error {
	answer, err := a.books.Ask(ctx, query)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, strings.TrimSpace(answer))
	return nil
}

func (a *App) Settings(ctx context.Context) error {
	s, err := a.books.Settings(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Display name\t%s\n", s.DisplayName)
	fmt.Fprintf(tw, "Billing URL\t%s\n", s.BillingURL)
	fmt.Fprintf(tw, "Colors\t%s / %s / %s\n", s.PrimaryColor, s.AccentColor, s.SplashBackgroundColor)
	fmt.Fprintf(tw, "Privacy mode\t%t\n", s.PrivacyMode)
	cal := "not connected"
	if s.CalendarConnected {
		cal = "connected"
		if s.CalendarLastSync != nil {
			cal += ", last sync " + s.CalendarLastSync.In(a.loc).Format("2006-01-02 15:04")
		}
	}
	fmt.Fprintf(tw, "Calendar\t%s\n", cal)
	return tw.Flush()
}

// Export builds the spreadsheet on the server and saves it to path when
// one is given.
func (a *App) Export(ctx context.Context, path string) error {
	res, err := a.books.ExportReport(ctx, path)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(a.out, "Report saved to %s\n", path)
		return nil
	}
	fmt.Fprintf(a.out, "Report exported to %s\nDownload: %s\n", res.Key, res.URL)
	return nil
}

func (a *App) Logo(ctx context.Context, path string) error {
	s, err := a.books.UploadLogo(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logo updated (%s)\n", s.LogoKey)
	return nil
}

func (a *App) Backup(ctx context.Context, path string) error {
	b, err := a.books.Backup(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup written to %s (%d clients, %d jobs, %d drafts)\n",
		path, len(b.Clients), len(b.Jobs), len(b.Drafts))
	return nil
}
