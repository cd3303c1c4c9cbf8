package finance

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/models"
)

func TestMonthly_CostCountedPerMonthForFullyPaidJobs(t *testing.T) {
	a, _ := newTestAnalyzer()
	jobs := []models.Job{
		withCost(job("paid", "1000", pay("400", "2024-01-10"), pay("600", "2024-02-05")), "100"),
		withCost(job("open", "500", pay("200", "2024-03-01")), "50"),
	}

	got := a.Monthly(jobs)

	want := []MonthBucket{
		{Key: "2024-01", Label: "jan. de 24", Revenue: d("400"), Cost: d("100"), Profit: d("300"), CompletedJobs: 1},
		{Key: "2024-02", Label: "fev. de 24", Revenue: d("600"), Cost: d("100"), Profit: d("500"), CompletedJobs: 1},
		{Key: "2024-03", Label: "mar. de 24", Revenue: d("200"), Cost: d("0"), Profit: d("200"), CompletedJobs: 1},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("Monthly mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthly_DistinctJobsPerMonth(t *testing.T) {
	a, _ := newTestAnalyzer()
	jobs := []models.Job{
		job("a", "300", pay("100", "2024-05-01"), pay("100", "2024-05-20")),
		job("b", "300", pay("50", "2024-05-03")),
	}

	got := a.Monthly(jobs)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].CompletedJobs)
	assert.True(t, got[0].Revenue.Equal(d("250")))
}

func TestMonthly_SkipsDeletedJobsAndBadDates(t *testing.T) {
	a, rec := newTestAnalyzer()
	deleted := job("gone", "100", pay("100", "2024-01-01"))
	deleted.IsDeleted = true

	jobs := []models.Job{
		deleted,
		job("bad", "100", pay("10", "yesterday"), pay("20", "2024-04-02T10:30:00.000Z")),
	}

	got := a.Monthly(jobs)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-04", got[0].Key)
	assert.True(t, got[0].Revenue.Equal(d("20")))
	assert.Len(t, rec.warns, 1)
}

func TestMonthly_KeepsLastTwelveAscending(t *testing.T) {
	a, _ := newTestAnalyzer()
	var payments []models.Payment
	for m := 14; m >= 1; m-- {
		date := time.Date(2023, time.Month(m), 15, 0, 0, 0, 0, time.UTC)
		payments = append(payments, pay("10", date.Format(time.DateOnly)))
	}

	got := a.Monthly([]models.Job{job("long", "1000", payments...)})
	require.Len(t, got, 12)
	assert.Equal(t, "2023-03", got[0].Key)
	assert.Equal(t, "2024-02", got[11].Key)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Key, got[i].Key)
	}
}

func TestMonthly_DateOnlyIsUTCMidnight(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	a := NewAnalyzer(logging.Nop{}, loc)

	got := a.Monthly([]models.Job{job("a", "100", pay("100", "2024-03-01"))})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02", got[0].Key)
}

func TestMonthly_Empty(t *testing.T) {
	a, _ := newTestAnalyzer()
	assert.Empty(t, a.Monthly(nil))
}

func TestParseDate(t *testing.T) {
	a, _ := newTestAnalyzer()
	for _, s := range []string{
		"2024-03-01",
		"2024-03-01T12:00:00Z",
		"2024-03-01T12:00:00.123Z",
		"2024-03-01T09:00:00-03:00",
		"2024-03-01T12:00:00",
		"2024-03-01T12:00",
		"2024-03-01 12:00:00",
	} {
		t.Run(s, func(t *testing.T) {
			got, err := a.ParseDate(s)
			require.NoError(t, err)
			assert.Equal(t, time.March, got.Month(), fmt.Sprint(got))
		})
	}

	_, err := a.ParseDate("")
	assert.Error(t, err)
	_, err = a.ParseDate("01/03/2024")
	assert.Error(t, err)
}

func TestMonthLabel(t *testing.T) {
	for key, want := range map[string]string{
		"2024-03": "mar. de 24",
		"2025-12": "dez. de 25",
		"2009-05": "mai. de 09",
		"bogus":   "bogus",
	} {
		if got := monthLabel(key); got != want {
			t.Errorf("monthLabel(%q) = %q, want %q", key, got, want)
		}
	}
}
