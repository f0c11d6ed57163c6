// Package validate provides the validate command.
package validate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/hostlists"
	"github.com/agentstation/hostlists/cmd/application"
	"github.com/agentstation/hostlists/internal/cmd/emoji"
	"github.com/agentstation/hostlists/internal/cmd/output"
	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// Issue is one problem found in the registry.
type Issue struct {
	Kind    string `json:"kind" yaml:"kind"`
	Subject string `json:"subject" yaml:"subject"`
	Problem string `json:"problem" yaml:"problem"`
}

// Report is the structured validation outcome.
type Report struct {
	Valid        bool     `json:"valid" yaml:"valid"`
	Issues       []Issue  `json:"issues,omitempty" yaml:"issues,omitempty"`
	Restorable   []string `json:"restorable,omitempty" yaml:"restorable,omitempty"`
	AbsentGroups []string `json:"absent_groups,omitempty" yaml:"absent_groups,omitempty"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Check the registry without writing anything",
		Long: `Validate runs the whole build as a dry run and lists every problem found:
unreadable source files, services with an empty or unknown group, invalid
icons and invalid translations. Nothing is restored or written.

The command exits with a non-zero status when any problem is found.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Pipeline(hostlists.WithDryRun(true))
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			res, runErr := p.Run(ctx)
			if runErr != nil && !errors.IsValidationError(runErr) {
				return runErr
			}

			report := NewReport(res, runErr)
			if err := Print(cmd.OutOrStdout(), report, output.DetectFormat(app.OutputFormat())); err != nil {
				return err
			}
			if !report.Valid {
				return fmt.Errorf("validation failed: %d issue(s) found", len(report.Issues))
			}
			return nil
		},
	}
}

// NewReport builds a report from a dry run result or its validation error.
func NewReport(res *hostlists.Result, err error) Report {
	if err != nil {
		var issues []Issue
		for _, row := range output.IssuesData(err).Rows {
			issues = append(issues, Issue{Kind: row[0], Subject: row[1], Problem: row[2]})
		}
		return Report{Valid: false, Issues: issues}
	}
	return Report{
		Valid:        true,
		Restorable:   res.Restored,
		AbsentGroups: res.AbsentGroups,
	}
}

// Print writes a report in the given format.
func Print(w io.Writer, r Report, format output.Format) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, r)
	}

	if !r.Valid {
		fmt.Fprintf(w, "%s Found %d issue(s)\n", emoji.Error, len(r.Issues))
		data := output.Data{Headers: []string{"Kind", "Subject", "Problem"}}
		for _, is := range r.Issues {
			data.Rows = append(data.Rows, []string{is.Kind, is.Subject, is.Problem})
		}
		return output.NewFormatter(output.FormatTable).Format(w, data)
	}

	for _, id := range r.Restorable {
		fmt.Fprintf(w, "%s %s has no source file and would be restored\n", emoji.Warning, id)
	}
	for _, g := range r.AbsentGroups {
		fmt.Fprintf(w, "%s group %s has no services\n", emoji.Warning, g)
	}
	fmt.Fprintf(w, "%s Registry is valid\n", emoji.Success)
	return nil
}
