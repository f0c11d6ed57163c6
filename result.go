package hostlists

import (
	"time"

	"github.com/agentstation/hostlists/internal/locales"
	"github.com/agentstation/hostlists/pkg/differ"
	"github.com/agentstation/hostlists/pkg/services"
)

// Result is the outcome of a pipeline run.
type Result struct {
	// Artifact is the reconciled artifact, written unless DryRun is set
	Artifact *services.Artifact

	// Restored lists the ids whose source files were missing.
	// In a dry run they are reported but not written.
	Restored []string

	// AbsentGroups lists groups of the previous artifact that no longer have services
	AbsentGroups []string

	// Changes compares the previous artifact with the new one
	Changes *differ.Changeset

	// Localizations is the built bundle, nil when no locales dir is configured
	Localizations *locales.Bundle

	// ArtifactPath and I18nPath are the files written by the run
	ArtifactPath string
	I18nPath     string

	DryRun   bool
	Duration time.Duration
}

// Drift describes how the source directory differs from the artifact.
type Drift struct {
	// Missing are artifact records without a source file
	Missing []services.Service

	// Changes compares the artifact with the source directory
	Changes *differ.Changeset
}

// HasDrift reports whether the source directory differs from the artifact.
func (d *Drift) HasDrift() bool {
	return len(d.Missing) > 0 || d.Changes.HasChanges()
}
