package daily

import (
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/editor"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/template"
)

// DefaultInsertDelay gives the process that created the file a moment to
// finish before the template is written. The creating writer offers no
// completion signal, so this stays a best-effort heuristic.
const DefaultInsertDelay = 300 * time.Millisecond

// AutoTemplater applies the daily-note template to new empty notes.
type AutoTemplater struct {
	notes     *Notes
	store     storage.Provider
	templater *template.Templater
	notifier  editor.Notifier
	logger    *slog.Logger
	delay     time.Duration
}

// NewAutoTemplater wires the auto-templater. A non-positive delay falls
// back to DefaultInsertDelay.
func NewAutoTemplater(notes *Notes, store storage.Provider, tp *template.Templater, notifier editor.Notifier, logger *slog.Logger, delay time.Duration) *AutoTemplater {
	if delay <= 0 {
		delay = DefaultInsertDelay
	}
	return &AutoTemplater{
		notes:     notes,
		store:     store,
		templater: tp,
		notifier:  notifier,
		logger:    logger,
		delay:     delay,
	}
}

// HandleCreate reacts to a file-creation event for a vault path. The
// template is scheduled only when every check passes: daily notes enabled
// with a template configured, the file is empty, its base name strictly
// matches the configured date format, and (when a folder is configured)
// the parent folder matches exactly.
func (a *AutoTemplater) HandleCreate(notePath string) {
	cfg := a.notes.Config()
	if !cfg.Enabled || cfg.Template == "" {
		return
	}

	data, err := a.store.Read(notePath)
	if err != nil || len(data) != 0 {
		return
	}

	base := strings.TrimSuffix(path.Base(notePath), ".md")
	format := cfg.Format
	if format == "" {
		format = models.DefaultDailySettings().Format
	}
	day, err := dateformat.Parse(base, format)
	if err != nil {
		// Name does not encode a daily date; unrelated file.
		return
	}

	if cfg.Folder != "" && parentFolder(notePath) != cfg.Folder {
		return
	}

	resolved, err := a.templater.Resolve(cfg.Template)
	if err != nil {
		if errors.Is(err, apperr.ErrTemplateNotFound) {
			a.notifier.Notify("Daily note template not found: " + cfg.Template)
		}
		a.logger.Warn("daily: template resolve failed",
			slog.String("path", notePath),
			slog.String("error", err.Error()))
		return
	}
	if !a.templater.Enabled() {
		return
	}

	a.logger.Debug("daily: scheduling template insert",
		slog.String("path", notePath),
		slog.String("template", resolved))
	time.AfterFunc(a.delay, func() {
		a.insert(notePath, resolved, day)
	})
}

// insert writes the expanded template into the note, re-checking that it
// is still empty so a user who started typing is never overwritten.
func (a *AutoTemplater) insert(notePath, resolved string, day time.Time) {
	data, err := a.store.Read(notePath)
	if err != nil || len(data) != 0 {
		return
	}
	raw, err := a.templater.Load(resolved)
	if err != nil {
		a.logger.Warn("daily: template read failed",
			slog.String("template", resolved),
			slog.String("error", err.Error()))
		return
	}
	content := a.templater.Expand(raw, notePath, day)
	if err := a.store.Write(notePath, []byte(content)); err != nil {
		a.logger.Warn("daily: template insert failed",
			slog.String("path", notePath),
			slog.String("error", err.Error()))
		return
	}
	a.logger.Info("daily: template applied", slog.String("path", notePath))
}

func parentFolder(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}
