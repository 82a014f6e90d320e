// Package app provides the application context and dependency management
// for the songbridge CLI: configuration, logging, and lazy access to the
// rule set the processing commands share.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/eliteembassy/songbridge/pkg/rules"
)

// App represents the songbridge application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Rule set (lazy-initialized, singleton)
	mu       sync.Mutex
	rules    *rules.Config
	rulesErr error
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Rules returns the processing rule set, loading it on first use. With no
// rules file configured the built-in defaults apply.
func (a *App) Rules() (rules.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rules == nil && a.rulesErr == nil {
		if a.config.RulesFile == "" {
			cfg := rules.Default()
			a.rules = &cfg
		} else {
			cfg, err := rules.Load(a.config.RulesFile)
			if err != nil {
				a.rulesErr = err
			} else {
				a.rules = &cfg
			}
		}
	}

	if a.rulesErr != nil {
		return rules.Config{}, a.rulesErr
	}
	return *a.rules, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRules sets a custom rule set (useful for testing).
func WithRules(cfg rules.Config) Option {
	return func(a *App) error {
		a.rules = &cfg
		return nil
	}
}
