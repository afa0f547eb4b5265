// Package editor models the active note view: the single open document
// whose in-memory buffer commands read and rewrite. Buffer edits write
// through to vault storage as one atomic operation.
package editor

import (
	"sync"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/storage"
)

// Manager tracks the currently open note.
type Manager struct {
	store storage.Provider

	mu   sync.Mutex
	path string
	buf  string
	open bool
}

// NewManager creates a Manager over the given vault.
func NewManager(store storage.Provider) *Manager {
	return &Manager{store: store}
}

// Open loads the file at path from the vault and makes it the active view,
// replacing any previously open note.
func (m *Manager) Open(path string) error {
	data, err := m.store.Read(path)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = path
	m.buf = string(data)
	m.open = true
	return nil
}

// ActivePath returns the path of the open note, if any.
func (m *Manager) ActivePath() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path, m.open
}

// Content returns the buffer of the active view. It fails with
// apperr.ErrNoActiveView when path is no longer the open note, so
// stale scheduled work degrades to a no-op.
func (m *Manager) Content(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || m.path != path {
		return "", apperr.ErrNoActiveView
	}
	return m.buf, nil
}

// SetContent replaces the active view's buffer in a single edit and writes
// it through to storage.
func (m *Manager) SetContent(path, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || m.path != path {
		return apperr.ErrNoActiveView
	}
	if err := m.store.Write(path, []byte(text)); err != nil {
		return err
	}
	m.buf = text
	return nil
}

// Close discards the active view.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = ""
	m.buf = ""
	m.open = false
}
