// Package build provides the build command.
package build

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/hostlists"
	"github.com/agentstation/hostlists/cmd/application"
	"github.com/agentstation/hostlists/internal/cmd/emoji"
	"github.com/agentstation/hostlists/internal/cmd/output"
	"github.com/agentstation/hostlists/pkg/logging"
)

// NewCommand creates the build command.
func NewCommand(app application.Application) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Rebuild the services artifact from the source directory",
		Long: `Build reconciles the compiled artifact with the per-service source files.

Source files that disappeared are restored from the artifact, records are
merged with the source files taking precedence, regrouped, sorted and
validated. The artifact is only rewritten when every check passes.`,
		Example: `  hostlists build
  hostlists build --source-dir services --artifact assets/services.json
  hostlists build --dry-run -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []hostlists.Option
			if cmd.Flags().Changed("dry-run") {
				opts = append(opts, hostlists.WithDryRun(dryRun))
			}
			p, err := app.Pipeline(opts...)
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			res, err := p.Run(ctx)
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), res, output.DetectFormat(app.OutputFormat()))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run every check but write nothing")
	return cmd
}

// Summary is the structured form of a build result.
type Summary struct {
	Artifact     string   `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	I18n         string   `json:"i18n,omitempty" yaml:"i18n,omitempty"`
	DryRun       bool     `json:"dry_run" yaml:"dry_run"`
	Services     int      `json:"services" yaml:"services"`
	Groups       int      `json:"groups" yaml:"groups"`
	Restored     []string `json:"restored,omitempty" yaml:"restored,omitempty"`
	AbsentGroups []string `json:"absent_groups,omitempty" yaml:"absent_groups,omitempty"`
	Changes      string   `json:"changes" yaml:"changes"`
	Duration     string   `json:"duration" yaml:"duration"`
}

// NewSummary flattens a result.
func NewSummary(res *hostlists.Result) Summary {
	return Summary{
		Artifact:     res.ArtifactPath,
		I18n:         res.I18nPath,
		DryRun:       res.DryRun,
		Services:     len(res.Artifact.BlockedServices),
		Groups:       len(res.Artifact.Groups),
		Restored:     res.Restored,
		AbsentGroups: res.AbsentGroups,
		Changes:      res.Changes.Summary(),
		Duration:     res.Duration.String(),
	}
}

// Print writes a result in the given format.
func Print(w io.Writer, res *hostlists.Result, format output.Format) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, NewSummary(res))
	}

	s := NewSummary(res)
	if len(s.Restored) > 0 {
		verb := "Restored"
		if s.DryRun {
			verb = "Would restore"
		}
		fmt.Fprintf(w, "%s %s source files: %s\n", emoji.Warning, verb, strings.Join(s.Restored, ", "))
	}
	if len(s.AbsentGroups) > 0 {
		fmt.Fprintf(w, "%s Groups without services: %s\n", emoji.Warning, strings.Join(s.AbsentGroups, ", "))
	}

	if s.DryRun {
		fmt.Fprintf(w, "%s Dry run, nothing written: %d services in %d groups (%s)\n", emoji.Info, s.Services, s.Groups, s.Changes)
	} else {
		fmt.Fprintf(w, "%s Built %s: %d services in %d groups (%s)\n", emoji.Success, s.Artifact, s.Services, s.Groups, s.Changes)
		if s.I18n != "" {
			fmt.Fprintf(w, "%s Built %s\n", emoji.Success, s.I18n)
		}
	}

	if changes := output.ChangesData(res.Changes); !changes.Empty() {
		return output.NewFormatter(output.FormatTable).Format(w, changes)
	}
	return nil
}
