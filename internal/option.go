package internal

import "time"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config      *Config
	insertDelay time.Duration
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithInsertDelay overrides the pause between a daily note appearing on
// disk and its template being inserted. Zero keeps the default.
func WithInsertDelay(d time.Duration) Option {
	return func(a *application) {
		a.insertDelay = d
	}
}
