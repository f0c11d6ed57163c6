package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the config file that was read, if any
	ConfigFile string

	// Pipeline configuration
	SourceDir    string
	ArtifactPath string
	LocalesDir   string
	I18nPath     string
	ValidGroups  []string
	DryRun       bool
	Concurrency  int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. HOSTLISTS_* environment variables
//  3. .env and .env.local files
//  4. Config file (configFile, or .hostlists.yaml in $HOME or the working dir)
//  5. Defaults
//
// A missing config file is only an error when configFile names it explicitly.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, pkgerrors.NewConfigError("config", "reading config file", err)
		}
	}

	return &Config{
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		SourceDir:    v.GetString("source_dir"),
		ArtifactPath: v.GetString("artifact_path"),
		LocalesDir:   v.GetString("locales_dir"),
		I18nPath:     v.GetString("i18n_path"),
		ValidGroups:  splitList(v.GetStringSlice("valid_groups")),
		DryRun:       v.GetBool("dry_run"),
		Concurrency:  v.GetInt("concurrency"),

		LogLevel:  firstNonEmpty(os.Getenv("LOG_LEVEL"), v.GetString("log_level")),
		LogFormat: firstNonEmpty(os.Getenv("LOG_FORMAT"), v.GetString("log_format")),
		LogOutput: firstNonEmpty(os.Getenv("LOG_OUTPUT"), v.GetString("log_output")),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source_dir", constants.DefaultSourceDir)
	v.SetDefault("artifact_path", constants.DefaultArtifactPath)
	v.SetDefault("locales_dir", "")
	v.SetDefault("i18n_path", constants.DefaultI18nPath)
	v.SetDefault("valid_groups", services.DefaultGroupNames)
	v.SetDefault("concurrency", constants.MaxConcurrentReads)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// Empty values leave the loaded configuration in place.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env then .env.local; variables already set win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
