package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/hostlists/internal/cmd/output"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hostlists",
		Short:   "Blocked services registry builder",
		Version: a.version,
		Long: `Hostlists maintains the blocked services registry: one YAML source file
per service and a compiled JSON artifact grouping every service.

The build command reconciles both, restoring source files deleted by mistake,
and only rewrites the artifact when every service passes validation.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.hostlists.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("source-dir", "", "directory with one source file per service")
	flags.String("artifact", "", "compiled services artifact")
	flags.String("locales-dir", "", "directory of locale translations, enables the i18n bundle")
	flags.String("i18n", "", "where the i18n bundle is written")

	rootCmd.SetVersionTemplate("hostlists {{.Version}}\n")
	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand reloads the configuration when --config is given, applies
// flag overrides and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if file := mustGetString(cmd, "config"); file != "" {
		config, err := LoadConfig(file)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)

	overrides := map[string]*string{
		"source-dir":  &a.config.SourceDir,
		"artifact":    &a.config.ArtifactPath,
		"locales-dir": &a.config.LocalesDir,
		"i18n":        &a.config.I18nPath,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst = mustGetString(cmd, name)
		}
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints err to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
