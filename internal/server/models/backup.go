package models

import "time"

const BackupVersion = 1

// Backup is the portable copy of a user's data.
type Backup struct {
	Version    int         `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Clients    []Client    `json:"clients"`
	Jobs       []Job       `json:"jobs"`
	Settings   *Settings   `json:"settings,omitempty"`
	Drafts     []DraftNote `json:"drafts"`
}

type ImportResult struct {
	Clients int `json:"clients"`
	Jobs    int `json:"jobs"`
	Drafts  int `json:"drafts"`
}
