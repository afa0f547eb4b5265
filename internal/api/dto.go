package api

import (
	"time"

	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/weekly"
)

// OpenWeeklyRequest is the request body for opening a weekly note.
// Date defaults to today; Next shifts the anchor one week forward.
type OpenWeeklyRequest struct {
	Date string `json:"date,omitempty"`
	Next bool   `json:"next,omitempty"`
}

// OpenWeeklyResponse reports the resolved note (aliased from the domain layer).
type OpenWeeklyResponse = weekly.OpenResult

// NoteResponse is the payload for a single note read.
type NoteResponse struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingsResponse carries both feature settings records.
type SettingsResponse struct {
	Weekly models.WeeklySettings `json:"weekly"`
	Daily  models.DailySettings  `json:"daily"`
}

// UpdateSettingsRequest updates the records that are present; an omitted
// record is left unchanged.
type UpdateSettingsRequest struct {
	Weekly *models.WeeklySettings `json:"weekly,omitempty"`
	Daily  *models.DailySettings  `json:"daily,omitempty"`
}
