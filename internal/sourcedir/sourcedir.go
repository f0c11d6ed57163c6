// Package sourcedir reads and restores the directory of per-service
// source files. Each service lives in <dir>/<id>.yml.
package sourcedir

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/hostlists/internal/fsutil"
	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
	"github.com/agentstation/hostlists/pkg/services"
)

// Dir is a source directory.
type Dir struct {
	path        string
	concurrency int
}

// Option configures a Dir.
type Option func(*Dir)

// WithConcurrency bounds the number of files parsed at once.
func WithConcurrency(n int) Option {
	return func(d *Dir) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// New returns a Dir rooted at path.
func New(path string, opts ...Option) *Dir {
	d := &Dir{
		path:        path,
		concurrency: constants.MaxConcurrentReads,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// FilePath returns the source file path for a service id.
func (d *Dir) FilePath(id string) string {
	return filepath.Join(d.path, id+constants.SourceFileExt)
}

// slot holds the outcome of reading one file.
type slot struct {
	record services.Service
	issue  string
}

// Read parses every source file in the directory. Files are parsed
// concurrently and the result is in file name order. Every file that cannot
// be read, parsed or validated, or whose name is not {id}.yml, is reported in
// one *errors.SourceFilesError.
func (d *Dir) Read(ctx context.Context) ([]services.Service, error) {
	logger := logging.FromContext(logging.WithPath(ctx, d.path))

	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, errors.WrapIO("list", d.path, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != constants.SourceFileExt {
			continue
		}
		names = append(names, name)
	}

	slots := make([]slot, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(d.path, name))
			if err != nil {
				slots[i].issue = err.Error()
				return nil
			}
			rec, err := services.ParseYAML(data)
			if err != nil {
				slots[i].issue = err.Error()
				return nil
			}
			slots[i].record = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]services.Service, 0, len(names))
	var issues []errors.FileIssue

	// Restore writes {id}.yml, so a record living under another name would be
	// overwritten the moment its file name shows up as missing.
	for i, s := range slots {
		name := names[i]
		if s.issue == "" {
			if want := s.record.ID + constants.SourceFileExt; want != name {
				s.issue = "holds service id " + s.record.ID + ", expected file name " + want
			}
		}
		if s.issue != "" {
			issues = append(issues, errors.FileIssue{File: name, Reason: s.issue})
			continue
		}
		records = append(records, s.record)
	}

	if len(issues) > 0 {
		return nil, &errors.SourceFilesError{Dir: d.path, Files: issues}
	}

	logger.Debug().Int("count", len(records)).Msg("Read source files")
	return records, nil
}

// Restore writes a source file for every record in missing, one after the
// other. All records are validated before anything is written, so a single
// malformed record leaves the directory untouched. The first write failure
// stops the batch. Writing the same record twice produces identical bytes.
func (d *Dir) Restore(ctx context.Context, missing []services.Service) error {
	if len(missing) == 0 {
		return nil
	}

	payloads := make([][]byte, len(missing))
	for i, rec := range missing {
		if err := rec.Validate(); err != nil {
			return &errors.RecoveryError{Dir: d.path, ID: rec.ID, Err: err}
		}
		data, err := services.FormatYAML(rec)
		if err != nil {
			return &errors.RecoveryError{Dir: d.path, ID: rec.ID, Err: err}
		}
		payloads[i] = data
	}

	for i, rec := range missing {
		if err := fsutil.WriteFileAtomic(d.FilePath(rec.ID), payloads[i], constants.FilePermissions); err != nil {
			logging.FromContext(logging.WithService(ctx, rec.ID)).Error().Err(err).Msg("Restoring source file failed")
			return &errors.RecoveryError{Dir: d.path, ID: rec.ID, Err: errors.WrapIO("write", d.FilePath(rec.ID), err)}
		}
	}

	ids := services.IDs(missing)
	logging.FromContext(logging.WithPath(ctx, d.path)).Warn().
		Strs("ids", ids).
		Msgf("These services have been removed: %s, and were restored", strings.Join(ids, ", "))
	return nil
}
