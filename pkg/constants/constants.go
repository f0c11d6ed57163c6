// Package constants provides shared constants used throughout the hostlists codebase.
// This includes file permissions, default paths, limits and other values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 5 * time.Minute

	// BuildTimeout bounds a single reconciliation run
	BuildTimeout = 2 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default locations, relative to the working directory
const (
	// DefaultSourceDir holds one YAML file per service
	DefaultSourceDir = "services"

	// DefaultArtifactPath is the compiled services artifact
	DefaultArtifactPath = "assets/services.json"

	// DefaultLocalesDir holds one directory per locale
	DefaultLocalesDir = "locales"

	// DefaultI18nPath is the compiled localization artifact
	DefaultI18nPath = "assets/services_i18n.json"

	// ConfigFileName is the optional config file looked up in the working directory
	ConfigFileName = ".hostlists"

	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "HOSTLISTS"
)

// File naming constants
const (
	// SourceFileExt is the extension of service source files
	SourceFileExt = ".yml"

	// LocaleFileName is the translation file read from each locale directory
	LocaleFileName = "services.json"

	// TempFileSuffix is appended to the target name for atomic writes
	TempFileSuffix = ".tmp.*"
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentReads is the maximum number of source files parsed concurrently
	MaxConcurrentReads = 16

	// MaxServiceIDLength is the maximum allowed length for a service id
	MaxServiceIDLength = 128
)
