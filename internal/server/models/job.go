package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one installment received for a job. Date keeps the text the
// client sent; the finance package parses it when aggregating.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Method string          `json:"method,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

// Observation is a timestamped note in a job's log.
type Observation struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Job struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"-"`
	Name                string              `json:"name"`
	ClientID            string              `json:"client_id"`
	ServiceType         ServiceType         `json:"service_type"`
	Value               decimal.Decimal     `json:"value"`
	Cost                decimal.NullDecimal `json:"cost"`
	Deadline            time.Time           `json:"deadline"`
	Status              JobStatus           `json:"status"`
	CloudLinks          []string            `json:"cloud_links,omitempty"`
	Notes               string              `json:"notes,omitempty"`
	Observations        []Observation       `json:"observations,omitempty"`
	IsDeleted           bool                `json:"is_deleted"`
	Payments            []Payment           `json:"payments"`
	CreateCalendarEvent bool                `json:"create_calendar_event"`
	CalendarEventID     string              `json:"calendar_event_id,omitempty"`
	IsRecurring         bool                `json:"is_recurring"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// CostOrZero returns the job cost, treating an absent cost as zero.
func (j *Job) CostOrZero() decimal.Decimal {
	if j.Cost.Valid {
		return j.Cost.Decimal
	}
	return decimal.Zero
}
