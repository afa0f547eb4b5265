// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/wunjo/internal/models"

// Provider is the interface for vault file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root),
	// creating parent directories as needed.
	Write(path string, content []byte) error
	// Create makes an empty file at path, failing with apperr.ErrAlreadyExists
	// if something is already there.
	Create(path string) error
	// Exists reports whether a file exists at path.
	Exists(path string) (bool, error)
	// EnsureDir creates dir (and parents) under the vault root.
	// An existing directory is not an error.
	EnsureDir(dir string) error
}
