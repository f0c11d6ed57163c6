package hostlists

import (
	"fmt"

	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/services"
)

// Option is a function that configures a Pipeline.
type Option func(*config) error

// config holds the paths and switches of a pipeline run.
type config struct {
	sourceDir    string
	artifactPath string
	localesDir   string
	i18nPath     string
	validGroups  *services.GroupSet
	dryRun       bool
	concurrency  int
}

func defaultConfig() *config {
	return &config{
		sourceDir:    constants.DefaultSourceDir,
		artifactPath: constants.DefaultArtifactPath,
		i18nPath:     constants.DefaultI18nPath,
		validGroups:  services.DefaultGroupSet(),
		concurrency:  constants.MaxConcurrentReads,
	}
}

// WithSourceDir sets the directory holding one source file per service.
func WithSourceDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return fmt.Errorf("source dir cannot be empty")
		}
		c.sourceDir = dir
		return nil
	}
}

// WithArtifactPath sets the compiled artifact that is read and rewritten.
func WithArtifactPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return fmt.Errorf("artifact path cannot be empty")
		}
		c.artifactPath = path
		return nil
	}
}

// WithLocalesDir enables building the localization bundle from dir.
// An empty dir disables it.
func WithLocalesDir(dir string) Option {
	return func(c *config) error {
		c.localesDir = dir
		return nil
	}
}

// WithI18nPath sets where the localization bundle is written.
func WithI18nPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return fmt.Errorf("i18n path cannot be empty")
		}
		c.i18nPath = path
		return nil
	}
}

// WithValidGroups replaces the valid group enumeration.
func WithValidGroups(names ...string) Option {
	return func(c *config) error {
		gs := services.NewGroupSet(names...)
		if gs.Len() == 0 {
			return fmt.Errorf("at least one valid group is required")
		}
		c.validGroups = gs
		return nil
	}
}

// WithDryRun runs every stage but writes nothing: no source file is
// restored and neither artifact is written.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithConcurrency bounds the number of source files parsed at once.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		c.concurrency = n
		return nil
	}
}
