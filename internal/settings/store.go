// Package settings provides SQLite-backed persistence for feature settings.
// Records are stored as JSON under namespaced keys and cached in memory;
// every mutation is written through immediately.
package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/wunjo/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const (
	keyWeekly = "weekly"
	keyDaily  = "daily"
)

// Store wraps a sql.DB with settings operations.
type Store struct {
	conn *sql.DB

	mu     sync.RWMutex
	weekly models.WeeklySettings
	daily  models.DailySettings
}

// Open opens (or creates) the SQLite database, applies the schema, and
// loads the persisted records. Absent keys fall back to defaults.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("settings: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("settings: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("settings: apply schema: %w", err)
	}

	s := &Store{
		conn:   conn,
		weekly: models.DefaultWeeklySettings(),
		daily:  models.DefaultDailySettings(),
	}
	if err := s.load(keyWeekly, &s.weekly); err != nil {
		conn.Close()
		return nil, err
	}
	if err := s.load(keyDaily, &s.daily); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) load(key string, target any) error {
	var raw string
	err := s.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil // keep defaults
	}
	if err != nil {
		return fmt.Errorf("settings: load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("settings: decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(raw), time.Now())
	if err != nil {
		return fmt.Errorf("settings: save %s: %w", key, err)
	}
	return nil
}

// Weekly returns the current weekly-note settings.
func (s *Store) Weekly() models.WeeklySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weekly
}

// Daily returns the current daily-notes settings.
func (s *Store) Daily() models.DailySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daily
}

// SetWeekly persists and applies new weekly settings. The date-format
// string is stored as entered; formatting errors surface at use time.
func (s *Store) SetWeekly(w models.WeeklySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(keyWeekly, w); err != nil {
		return err
	}
	s.weekly = w
	return nil
}

// SetDaily persists and applies new daily-notes settings.
func (s *Store) SetDaily(d models.DailySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(keyDaily, d); err != nil {
		return err
	}
	s.daily = d
	return nil
}
