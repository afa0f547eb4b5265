// Package daily consults the daily-notes feature: it resolves links to
// daily notes and applies the daily template to freshly created, empty
// notes whose names match the configured date format.
package daily

import (
	"fmt"
	"time"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/settings"
)

// Notes is a read-only view of the daily-notes configuration.
type Notes struct {
	settings *settings.Store
}

// NewNotes creates a view over the settings store.
func NewNotes(st *settings.Store) *Notes {
	return &Notes{settings: st}
}

// Config returns the current daily-notes settings.
func (n *Notes) Config() models.DailySettings {
	return n.settings.Daily()
}

// Link produces a link-shaped string for the daily note of the given
// date: "folder/formatted-date" when a folder is configured, otherwise
// just the formatted date. No check is made that the note exists.
// Returns apperr.ErrDailyNotesDisabled when the feature is off.
func (n *Notes) Link(date time.Time) (string, error) {
	cfg := n.settings.Daily()
	if !cfg.Enabled {
		return "", apperr.ErrDailyNotesDisabled
	}
	format := cfg.Format
	if format == "" {
		format = models.DefaultDailySettings().Format
	}
	formatted := dateformat.Format(date, format)
	if cfg.Folder != "" {
		return fmt.Sprintf("%s/%s", cfg.Folder, formatted), nil
	}
	return formatted, nil
}
