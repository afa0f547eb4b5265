// Package apperr defines sentinel errors shared across Wunjo components.
package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrDailyNotesDisabled = errors.New("daily notes disabled")
	ErrNoActiveView       = errors.New("no active view")
)
