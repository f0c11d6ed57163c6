package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/hostlists/cmd/hostlists/cmd/build"
	"github.com/agentstation/hostlists/cmd/hostlists/cmd/diff"
	"github.com/agentstation/hostlists/cmd/hostlists/cmd/docs"
	"github.com/agentstation/hostlists/cmd/hostlists/cmd/validate"
)

func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(diff.NewCommand(a))

	rootCmd.AddCommand(docs.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "hostlists %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			}
		},
	}
}
