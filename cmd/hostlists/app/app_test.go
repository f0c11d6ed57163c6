package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/cmd/hostlists/cmd/build"
	"github.com/agentstation/hostlists/internal/cmd/application"
	"github.com/agentstation/hostlists/pkg/services"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	isolate(t)
	t.Setenv("LOG_OUTPUT", "discard")

	var out bytes.Buffer
	a, err := New("1.0.0", "abc123", "2025-01-01", "test", WithOutput(&out))
	require.NoError(t, err)
	return a, &out
}

func TestNew(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2025-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	require.NotNil(t, a.Config())

	p, err := a.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, "services", p.SourceDir())
	assert.Equal(t, "assets/services.json", p.ArtifactPath())
}

func TestExecuteVersion(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, a.Execute(context.Background(), []string{"version", "-v"}))
	assert.Contains(t, out.String(), "hostlists 1.0.0")
	assert.Contains(t, out.String(), "commit:   abc123")
}

func TestExecuteBuildWithFlags(t *testing.T) {
	a, out := newTestApp(t)
	dest := &services.Artifact{
		BlockedServices: []services.Service{application.Service("a", "cdn")},
		Groups:          []services.Group{{ID: "cdn"}},
	}
	f := application.NewFixture(t, dest, application.Service("b", "ai"))

	err := a.Execute(context.Background(), []string{
		"build", "--source-dir", f.Sources, "--artifact", f.Artifact, "-o", "json",
	})
	require.NoError(t, err)

	var s build.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, f.Artifact, s.Artifact)
	assert.Equal(t, []string{"a"}, s.Restored)
	assert.Equal(t, 2, s.Services)
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.Execute(context.Background(), []string{"version", "-o", "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExecuteConfigFlag(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.Execute(context.Background(), []string{"version", "--config", "missing.yaml"})
	require.Error(t, err)
}
