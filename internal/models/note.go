// Package models defines the domain types for Wunjo.
package models

import "time"

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeeklySettings is the configuration record for the weekly-note feature.
// Persisted under the "weekly" settings key.
type WeeklySettings struct {
	Folder     string `json:"folder"`
	Template   string `json:"template"`
	DateFormat string `json:"dateFormat"`
}

// DailySettings is the configuration record for the daily-notes feature.
// The weekly components consult it read-only; it is owned by the daily side.
// Persisted under the "daily" settings key.
type DailySettings struct {
	Enabled  bool   `json:"enabled"`
	Format   string `json:"format"`
	Folder   string `json:"folder"`
	Template string `json:"template"`
}

// DefaultWeeklySettings returns the settings used when nothing is persisted.
func DefaultWeeklySettings() WeeklySettings {
	return WeeklySettings{
		Folder:     "",
		Template:   "",
		DateFormat: "gggg-[W]ww",
	}
}

// DefaultDailySettings returns the daily-notes defaults (feature disabled).
func DefaultDailySettings() DailySettings {
	return DailySettings{
		Enabled:  false,
		Format:   "YYYY-MM-DD",
		Folder:   "",
		Template: "",
	}
}
