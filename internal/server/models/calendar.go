package models

import "time"

type EventSource string

const (
	EventSourceGoogle EventSource = "google"
	EventSourceLocal  EventSource = "local"
)

type CalendarEvent struct {
	ID     string      `json:"id"`
	UserID string      `json:"-"`
	Title  string      `json:"title"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	AllDay bool        `json:"all_day"`
	Source EventSource `json:"source"`
	JobID  string      `json:"job_id,omitempty"`
}
