// Package weekly opens or creates the note for a week, seeds new notes
// from the configured template, and rewrites weekday placeholder tokens
// into dates and daily-note links.
package weekly

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"time"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/daily"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/editor"
	"github.com/starford/wunjo/internal/settings"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/template"
)

// OpenResult reports where the weekly note lives and whether this call
// created it.
type OpenResult struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// Service coordinates note resolution, template application, and
// placeholder rewriting.
type Service struct {
	store     storage.Provider
	settings  *settings.Store
	templater *template.Templater
	editor    *editor.Manager
	daily     *daily.Notes
	notifier  editor.Notifier
	logger    *slog.Logger
}

// NewService wires the weekly-note service.
func NewService(store storage.Provider, st *settings.Store, tp *template.Templater, ed *editor.Manager, dn *daily.Notes, notifier editor.Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		settings:  st,
		templater: tp,
		editor:    ed,
		daily:     dn,
		notifier:  notifier,
		logger:    logger,
	}
}

// NotePath computes the vault path of the weekly note for the anchor
// date: folder/format(anchor)+".md", normalized.
func (s *Service) NotePath(anchor time.Time) string {
	cfg := s.settings.Weekly()
	name := dateformat.Format(anchor, cfg.DateFormat) + ".md"
	if cfg.Folder == "" {
		return path.Clean(name)
	}
	return path.Clean(path.Join(cfg.Folder, name))
}

// Open locates or creates the weekly note for anchor and opens it in
// the active view. For newly created notes only, it applies the
// template and rewrites placeholders. Failures are reported to the
// user and logged; the error is also returned for transport-level
// status mapping.
func (s *Service) Open(ctx context.Context, anchor time.Time) (OpenResult, error) {
	res, err := s.open(ctx, anchor)
	if err != nil {
		s.notifier.Notify("Failed to open weekly note: " + err.Error())
		s.logger.Error("weekly: open failed",
			slog.String("path", res.Path),
			slog.String("error", err.Error()))
	}
	return res, err
}

func (s *Service) open(ctx context.Context, anchor time.Time) (OpenResult, error) {
	notePath := s.NotePath(anchor)
	res := OpenResult{Path: notePath}

	exists, err := s.store.Exists(notePath)
	if err != nil {
		return res, err
	}

	if !exists {
		if dir := path.Dir(notePath); dir != "." {
			// An already existing folder is fine.
			if err := s.store.EnsureDir(dir); err != nil {
				return res, err
			}
		}
		switch err := s.store.Create(notePath); {
		case err == nil:
			res.Created = true
			s.logger.Info("weekly: note created", slog.String("path", notePath))
		case errors.Is(err, apperr.ErrAlreadyExists):
			// Lost a race with a concurrent create; treat as reuse.
			s.logger.Debug("weekly: note appeared concurrently", slog.String("path", notePath))
		default:
			return res, err
		}
	}

	if err := s.editor.Open(notePath); err != nil {
		return res, err
	}

	if res.Created {
		s.applyTemplate(ctx, notePath, anchor)
	}
	return res, nil
}

// applyTemplate seeds a freshly created note. Template insertion errors
// degrade to an empty-but-open note; the placeholder rewrite runs once
// insertion has completed.
func (s *Service) applyTemplate(_ context.Context, notePath string, anchor time.Time) {
	cfg := s.settings.Weekly()
	if cfg.Template == "" {
		return
	}

	resolved, err := s.templater.Resolve(cfg.Template)
	if err != nil {
		if errors.Is(err, apperr.ErrTemplateNotFound) {
			s.notifier.Notify("Template not found: " + cfg.Template)
		}
		s.logger.Warn("weekly: template resolve failed",
			slog.String("template", cfg.Template),
			slog.String("error", err.Error()))
		return
	}

	raw, err := s.templater.Load(resolved)
	if err != nil {
		s.notifier.Notify("Failed to read template: " + resolved)
		s.logger.Warn("weekly: template read failed",
			slog.String("template", resolved),
			slog.String("error", err.Error()))
		return
	}

	content := raw
	if s.templater.Enabled() {
		content = s.templater.Expand(raw, notePath, anchor)
	}
	if err := s.editor.SetContent(notePath, content); err != nil {
		s.logger.Warn("weekly: template insert failed",
			slog.String("path", notePath),
			slog.String("error", err.Error()))
		return
	}

	// Insertion is synchronous here, so the rewrite runs on completion
	// instead of after a heuristic delay.
	if err := s.RewritePlaceholders(notePath, anchor); err != nil {
		s.logger.Warn("weekly: placeholder rewrite failed",
			slog.String("path", notePath),
			slog.String("error", err.Error()))
	}
}
