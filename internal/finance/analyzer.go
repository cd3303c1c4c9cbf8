package finance

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/logging"
)

var errBadDate = errors.New("unparsable payment date")

// Analyzer holds what the date-dependent computations need: the location
// months are cut in and a logger for skipped records.
type Analyzer struct {
	log logging.Logger
	loc *time.Location
}

func NewAnalyzer(log logging.Logger, loc *time.Location) *Analyzer {
	if log == nil {
		log = logging.Nop{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Analyzer{log: log.With("module", "finance"), loc: loc}
}

func (a *Analyzer) Location() *time.Location { return a.loc }

// localLayouts carry no zone and are read in the analyzer's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate reads an ISO-8601 payment date. A bare calendar date is midnight
// UTC, which is how browsers stored it; the result is always expressed in
// the analyzer's location.
func (a *Analyzer) ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errBadDate
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(a.loc), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.In(a.loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, a.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadDate
}

func (a *Analyzer) skip(jobID, paymentID, date string) {
	a.log.Warn(context.Background(), "skipping payment with unparsable date",
		"job_id", jobID, "payment_id", paymentID, "date", date)
}
