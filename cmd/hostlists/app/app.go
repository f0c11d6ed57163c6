// Package app wires configuration, logging and the command tree of the
// hostlists CLI.
package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/hostlists"
	"github.com/agentstation/hostlists/cmd/application"
)

// App holds the version information, configuration and logger shared by
// every command.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// out receives command output, stdout when nil
	out io.Writer
}

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger replaces the configured logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput sends command output to w.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// New creates a new App, loading configuration from the environment, .env
// files and the default config file locations.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
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

// Version returns the application version.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns who built the binary.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string { return a.config.Format }

// Pipeline builds a pipeline from the configuration; opts are applied last.
func (a *App) Pipeline(opts ...hostlists.Option) (*hostlists.Pipeline, error) {
	c := a.config
	base := []hostlists.Option{
		hostlists.WithSourceDir(c.SourceDir),
		hostlists.WithArtifactPath(c.ArtifactPath),
		hostlists.WithLocalesDir(c.LocalesDir),
		hostlists.WithI18nPath(c.I18nPath),
		hostlists.WithDryRun(c.DryRun),
	}
	if c.Concurrency > 0 {
		base = append(base, hostlists.WithConcurrency(c.Concurrency))
	}
	if len(c.ValidGroups) > 0 {
		base = append(base, hostlists.WithValidGroups(c.ValidGroups...))
	}
	return hostlists.New(append(base, opts...)...)
}

var _ application.Application = (*App)(nil)
