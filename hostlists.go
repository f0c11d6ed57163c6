// Package hostlists reconciles the compiled blocked services artifact with
// the directory of per-service source files.
//
// A run reads both sides, restores source files that were deleted by
// mistake, merges the records with the source directory taking precedence,
// regroups and sorts them, validates groups and icons and finally rewrites
// the artifact. Any failure stops the run before the artifact is touched.
//
// Example:
//
//	p, err := hostlists.New(
//		hostlists.WithSourceDir("services"),
//		hostlists.WithArtifactPath("assets/services.json"),
//	)
//	if err != nil {
//		return err
//	}
//	res, err := p.Run(ctx)
package hostlists

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/hostlists/internal/artifact"
	"github.com/agentstation/hostlists/internal/locales"
	"github.com/agentstation/hostlists/internal/sourcedir"
	"github.com/agentstation/hostlists/pkg/differ"
	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
	"github.com/agentstation/hostlists/pkg/reconciler"
	"github.com/agentstation/hostlists/pkg/services"
	"github.com/agentstation/hostlists/pkg/svg"
)

// Stage names used in log fields.
const (
	StageReadDestination = "read_destination"
	StageReadSource      = "read_source"
	StageRestore         = "restore"
	StageMerge           = "merge"
	StageGroup           = "group"
	StageValidate        = "validate"
	StageWrite           = "write"
	StageLocalize        = "localize"
)

// Pipeline runs the reconciliation.
type Pipeline struct {
	config *config
	source *sourcedir.Dir
	hooks  *hooks
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	return &Pipeline{
		config: cfg,
		source: sourcedir.New(cfg.sourceDir, sourcedir.WithConcurrency(cfg.concurrency)),
		hooks:  newHooks(),
	}, nil
}

// SourceDir returns the configured source directory.
func (p *Pipeline) SourceDir() string { return p.config.sourceDir }

// ArtifactPath returns the configured artifact path.
func (p *Pipeline) ArtifactPath() string { return p.config.artifactPath }

// LocalesDir returns the locales directory, empty when localization is off.
func (p *Pipeline) LocalesDir() string { return p.config.localesDir }

// ValidGroups returns the valid group enumeration.
func (p *Pipeline) ValidGroups() *services.GroupSet { return p.config.validGroups }

// Run executes every stage in order and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	cfg := p.config
	logger := logging.FromContext(ctx)

	res := &Result{DryRun: cfg.dryRun}

	dest, err := artifact.Read(cfg.artifactPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("stage", StageReadDestination).
		Int("services", len(dest.BlockedServices)).
		Int("groups", len(dest.Groups)).
		Msg("Read destination artifact")

	source, err := p.source.Read(logging.WithStage(ctx, StageReadSource))
	if err != nil {
		return nil, err
	}

	missing, err := differ.Services(dest.BlockedServices, source)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		res.Restored = services.IDs(missing)
		if cfg.dryRun {
			logger.Warn().
				Str("stage", StageRestore).
				Strs("ids", res.Restored).
				Msgf("These services have been removed and would be restored: %s", strings.Join(res.Restored, ", "))
		} else {
			if err := p.source.Restore(logging.WithStage(ctx, StageRestore), missing); err != nil {
				return nil, err
			}
			p.hooks.triggerRestored(missing)

			// restored files must parse the same way as hand-written ones
			source, err = p.source.Read(logging.WithStage(ctx, StageReadSource))
			if err != nil {
				return nil, err
			}
		}
	}

	merged := reconciler.Merge(dest.BlockedServices, source)
	logger.Debug().Str("stage", StageMerge).Int("services", len(merged)).Msg("Merged records")

	art, err := reconciler.GroupAndSort(merged)
	if err != nil {
		return nil, err
	}

	if absent := differ.Groups(dest.Groups, art.Groups); len(absent) > 0 {
		res.AbsentGroups = services.GroupIDs(absent)
		logger.Warn().
			Str("stage", StageGroup).
			Strs("groups", res.AbsentGroups).
			Msgf("These groups have no services: %s", strings.Join(res.AbsentGroups, ", "))
	}

	if err := cfg.validGroups.Check(art.BlockedServices); err != nil {
		return nil, err
	}
	if err := svg.ValidateAll(art.BlockedServices); err != nil {
		return nil, err
	}

	res.Artifact = art
	res.Changes = differ.New().Compare(dest.BlockedServices, art.BlockedServices)

	if cfg.localesDir != "" {
		bundle, err := locales.Build(logging.WithStage(ctx, StageLocalize), cfg.localesDir, cfg.validGroups)
		if err != nil {
			return nil, err
		}
		res.Localizations = bundle
	}

	if cfg.dryRun {
		res.Duration = time.Since(start)
		logger.Info().
			Str("changes", res.Changes.Summary()).
			Msg("Dry run finished, nothing written")
		return res, nil
	}

	// The artifact is written last, so a failed bundle write leaves it untouched.
	artData, err := artifact.Encode(art)
	if err != nil {
		return nil, &errors.ArtifactWriteError{Path: cfg.artifactPath, Err: err}
	}
	var bundleData []byte
	if res.Localizations != nil {
		if bundleData, err = locales.Encode(res.Localizations); err != nil {
			return nil, errors.WrapParse("json", cfg.i18nPath, err)
		}
	}

	if bundleData != nil {
		if err := locales.WriteEncoded(cfg.i18nPath, bundleData); err != nil {
			return nil, err
		}
		res.I18nPath = cfg.i18nPath
		logger.Info().Str("stage", StageLocalize).Msgf("Successfully finished building %s", cfg.i18nPath)
	}

	if err := artifact.WriteEncoded(cfg.artifactPath, artData); err != nil {
		return nil, err
	}
	res.ArtifactPath = cfg.artifactPath
	p.hooks.triggerChangeset(res.Changes)
	logger.Info().
		Str("stage", StageWrite).
		Str("changes", res.Changes.Summary()).
		Msgf("Successfully finished building %s", cfg.artifactPath)

	res.Duration = time.Since(start)
	return res, nil
}

// Drift reports how the source directory differs from the artifact
// without changing anything on disk.
func (p *Pipeline) Drift(ctx context.Context) (*Drift, error) {
	dest, err := artifact.Read(p.config.artifactPath)
	if err != nil {
		return nil, err
	}
	source, err := p.source.Read(logging.WithStage(ctx, StageReadSource))
	if err != nil {
		return nil, err
	}
	missing, err := differ.Services(dest.BlockedServices, source)
	if err != nil {
		return nil, err
	}
	return &Drift{
		Missing: missing,
		Changes: differ.New().Compare(dest.BlockedServices, source),
	}, nil
}
