package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/hostlists"
	"github.com/agentstation/hostlists/internal/artifact"
	"github.com/agentstation/hostlists/internal/sourcedir"
	"github.com/agentstation/hostlists/pkg/services"
)

// ValidIcon passes every icon check.
const ValidIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="currentColor"><path d="M0 0h24v24H0z"/></svg>`

// Service returns a valid record for id in group.
func Service(id, group string) services.Service {
	return services.Service{
		ID:      id,
		Name:    "Service " + id,
		Rules:   []string{"||" + id + ".com^"},
		IconSVG: ValidIcon,
		Group:   group,
	}
}

// Fixture is a registry checkout in a temporary directory.
type Fixture struct {
	Root     string
	Sources  string
	Artifact string
}

// NewFixture writes dest as the artifact and sources as source files.
func NewFixture(t testing.TB, dest *services.Artifact, sources ...services.Service) *Fixture {
	t.Helper()
	root := t.TempDir()
	f := &Fixture{
		Root:     root,
		Sources:  filepath.Join(root, "services"),
		Artifact: filepath.Join(root, "assets", "services.json"),
	}
	if err := os.MkdirAll(f.Sources, 0o755); err != nil {
		t.Fatalf("creating source dir: %v", err)
	}
	if err := sourcedir.New(f.Sources).Restore(context.Background(), sources); err != nil {
		t.Fatalf("writing sources: %v", err)
	}
	if err := artifact.Write(f.Artifact, dest); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return f
}

// Options points a pipeline at the fixture.
func (f *Fixture) Options() []hostlists.Option {
	return []hostlists.Option{
		hostlists.WithSourceDir(f.Sources),
		hostlists.WithArtifactPath(f.Artifact),
	}
}

// Mock returns a Mock whose pipelines run against the fixture in format.
func (f *Fixture) Mock(format string) *Mock {
	return &Mock{
		PipelineFunc: func(opts ...hostlists.Option) (*hostlists.Pipeline, error) {
			return hostlists.New(append(f.Options(), opts...)...)
		},
		OutputFormatFunc: func() string { return format },
	}
}
