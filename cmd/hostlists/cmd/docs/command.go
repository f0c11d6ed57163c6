// Package docs provides the docs command.
package docs

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/hostlists/cmd/application"
	"github.com/agentstation/hostlists/internal/artifact"
	"github.com/agentstation/hostlists/internal/cmd/emoji"
	render "github.com/agentstation/hostlists/internal/docs"
	"github.com/agentstation/hostlists/internal/fsutil"
	"github.com/agentstation/hostlists/internal/locales"
	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/logging"
)

// NewCommand creates the docs command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		out   string
		title string
	)

	cmd := &cobra.Command{
		Use:     "docs",
		GroupID: "management",
		Short:   "Generate a markdown catalog of the blocked services",
		Long: `Docs renders the compiled artifact as markdown: a list of groups followed
by one table of services per group. When a locales directory is configured
the translated group names are included.`,
		Example: `  hostlists docs
  hostlists docs --out SERVICES.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Pipeline()
			if err != nil {
				return err
			}
			art, err := artifact.Read(p.ArtifactPath())
			if err != nil {
				return err
			}

			opts := []render.Option{render.WithTitle(title)}
			if dir := p.LocalesDir(); dir != "" {
				ctx := logging.WithLogger(cmd.Context(), app.Logger())
				bundle, err := locales.Build(ctx, dir, p.ValidGroups())
				if err != nil {
					return err
				}
				opts = append(opts, render.WithLocalizations(bundle))
			}

			var buf bytes.Buffer
			if err := render.New(opts...).Render(&buf, art); err != nil {
				return fmt.Errorf("rendering docs: %w", err)
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := fsutil.WriteFileAtomic(out, buf.Bytes(), constants.FilePermissions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", emoji.Success, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", render.DefaultTitle, "document heading")
	return cmd
}
