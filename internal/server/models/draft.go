package models

import (
	"fmt"
	"time"
)

type DraftType string

const (
	DraftText   DraftType = "text"
	DraftScript DraftType = "script"
)

func ParseDraftType(s string) (DraftType, error) {
	switch DraftType(s) {
	case DraftText, DraftScript:
		return DraftType(s), nil
	}
	return "", fmt.Errorf("unknown draft type %q", s)
}

type ScriptLine struct {
	ID              string `json:"id"`
	Scene           string `json:"scene"`
	Description     string `json:"description"`
	DurationSeconds int    `json:"duration_seconds"`
}

// Attachment points at a blob in object storage.
type Attachment struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StorageKey string `json:"storage_key"`
}

type DraftNote struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Title       string       `json:"title"`
	Type        DraftType    `json:"type"`
	Content     string       `json:"content"`
	ScriptLines []ScriptLine `json:"script_lines"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
