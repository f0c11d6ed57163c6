// Package diff provides the diff command.
package diff

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
	"github.com/agentstation/hostlists/pkg/services"
)

// ErrDrift is returned with --exit-code when the source directory differs
// from the artifact.
var ErrDrift = errors.New("source directory differs from the artifact")

// Report is the structured drift outcome.
type Report struct {
	Missing []string       `json:"missing" yaml:"missing"`
	Added   []string       `json:"added" yaml:"added"`
	Updated []UpdateReport `json:"updated" yaml:"updated"`
}

// UpdateReport lists the field changes of one service.
type UpdateReport struct {
	ID      string   `json:"id" yaml:"id"`
	Changes []string `json:"changes" yaml:"changes"`
}

// NewCommand creates the diff command.
func NewCommand(app application.Application) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:     "diff",
		GroupID: "core",
		Short:   "Show how the source directory differs from the artifact",
		Long: `Diff compares the per-service source files with the compiled artifact:
services whose source file is missing, services only present as source files
and services whose fields changed. Nothing is written.`,
		Example: `  hostlists diff
  hostlists diff --exit-code`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Pipeline()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			drift, err := p.Drift(ctx)
			if err != nil {
				return err
			}
			if err := Print(cmd.OutOrStdout(), drift, p.ArtifactPath(), output.DetectFormat(app.OutputFormat())); err != nil {
				return err
			}
			if exitCode && drift.HasDrift() {
				return ErrDrift
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with a non-zero status when there is drift")
	return cmd
}

// NewReport flattens a drift.
func NewReport(d *hostlists.Drift) Report {
	r := Report{
		Missing: services.IDs(d.Missing),
		Added:   services.IDs(d.Changes.Added),
		Updated: make([]UpdateReport, 0, len(d.Changes.Updated)),
	}
	for _, u := range d.Changes.Updated {
		ur := UpdateReport{ID: u.ID}
		for _, fc := range u.Changes {
			ur.Changes = append(ur.Changes, fc.String())
		}
		r.Updated = append(r.Updated, ur)
	}
	return r
}

// Print writes a drift in the given format.
func Print(w io.Writer, d *hostlists.Drift, artifactPath string, format output.Format) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, NewReport(d))
	}
	if !d.HasDrift() {
		fmt.Fprintf(w, "%s Source directory matches %s\n", emoji.Success, artifactPath)
		return nil
	}
	return output.NewFormatter(output.FormatTable).Format(w, output.DriftData(d.Missing, d.Changes))
}
