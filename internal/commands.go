package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/starford/wunjo/internal/daily"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/editor"
	"github.com/starford/wunjo/internal/mcpserver"
	"github.com/starford/wunjo/internal/settings"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/template"
	"github.com/starford/wunjo/internal/week"
	"github.com/starford/wunjo/internal/weekly"
)

// core bundles the services shared by the one-shot CLI commands.
type core struct {
	store    storage.Provider
	settings *settings.Store
	weekly   *weekly.Service
}

func buildCore(cfg *Config, logger *slog.Logger) (*core, func(), error) {
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create vault dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	st, err := settings.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init settings: %w", err)
	}

	notifier := editor.NotifierFunc(func(msg string) {
		logger.Info("Notice", slog.String("message", msg))
	})

	ed := editor.NewManager(store)
	tp := template.New(store, cfg.Templates.Expand)
	svc := weekly.NewService(store, st, tp, ed, daily.NewNotes(st), notifier, logger)

	cleanup := func() { _ = st.Close() }
	return &core{store: store, settings: st, weekly: svc}, cleanup, nil
}

// OpenWeekly opens (creating if needed) the weekly note for the given
// anchor date, or today's when date is empty, and returns its vault path.
func OpenWeekly(ctx context.Context, cfg *Config, date string, next bool) (weekly.OpenResult, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.App.LogLevel}))

	c, cleanup, err := buildCore(cfg, logger)
	if err != nil {
		return weekly.OpenResult{}, err
	}
	defer cleanup()

	anchor := time.Now()
	if date != "" {
		anchor, err = dateformat.Parse(date, "YYYY-MM-DD")
		if err != nil {
			return weekly.OpenResult{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
	}
	if next {
		anchor = week.Next(anchor)
	}

	return c.weekly.Open(ctx, anchor)
}

// RunMCP serves the MCP server over stdio until the client disconnects.
// Logs go to stderr so stdout stays a clean protocol stream.
func RunMCP(ctx context.Context, cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.App.LogLevel}))
	slog.SetDefault(logger)

	c, cleanup, err := buildCore(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcpserver.New(c.store, c.weekly)
	return srv.ServeStdio()
}
