// Package template implements template resolution and insertion for new
// notes. It stands in for a host template service: resolved template text
// is expanded ({{date}}, {{time}}, {{title}}) before insertion. Callers
// fall back to raw template text when the capability is disabled.
package template

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/storage"
)

// expansionRe matches the templater's own placeholders. Weekday tokens
// (!{{monday:...}}) are a separate vocabulary and are left untouched.
var expansionRe = regexp.MustCompile(`\{\{(date|time|title)(?::([^{}]*))?\}\}`)

// Default formats for bare {{date}} and {{time}}.
const (
	defaultDateFormat = "YYYY-MM-DD"
	defaultTimeFormat = "HH:mm"
)

// Templater resolves and expands note templates from the vault.
type Templater struct {
	store   storage.Provider
	enabled bool
}

// New creates a Templater. When enabled is false, Expand is skipped by
// callers and template text is copied raw.
func New(store storage.Provider, enabled bool) *Templater {
	return &Templater{store: store, enabled: enabled}
}

// Enabled reports whether template expansion is active.
func (tp *Templater) Enabled() bool {
	return tp.enabled
}

// Resolve locates a template file: the configured path is tried literally,
// then with a ".md" suffix appended. Returns the resolved vault path or
// apperr.ErrTemplateNotFound.
func (tp *Templater) Resolve(configured string) (string, error) {
	if configured == "" {
		return "", fmt.Errorf("template: no path configured: %w", apperr.ErrTemplateNotFound)
	}
	for _, candidate := range []string{configured, configured + ".md"} {
		ok, err := tp.store.Exists(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("template: %s: %w", configured, apperr.ErrTemplateNotFound)
}

// Load reads the resolved template file.
func (tp *Templater) Load(resolved string) (string, error) {
	data, err := tp.store.Read(resolved)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Expand substitutes {{date}}, {{time}} and {{title}} placeholders.
// An optional format suffix ({{date:DD.MM.YYYY}}) overrides the default.
// The title is the stem of the target note's file name.
func (tp *Templater) Expand(raw, notePath string, now time.Time) string {
	title := strings.TrimSuffix(path.Base(notePath), ".md")
	return expansionRe.ReplaceAllStringFunc(raw, func(match string) string {
		m := expansionRe.FindStringSubmatch(match)
		layout := m[2]
		switch m[1] {
		case "date":
			if layout == "" {
				layout = defaultDateFormat
			}
			return dateformat.Format(now, layout)
		case "time":
			if layout == "" {
				layout = defaultTimeFormat
			}
			return dateformat.Format(now, layout)
		case "title":
			return title
		}
		return match
	})
}
