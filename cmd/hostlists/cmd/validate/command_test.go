package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/internal/cmd/application"
	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

func run(t *testing.T, app *application.Mock) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetArgs(nil)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateClean(t *testing.T) {
	dest := &services.Artifact{
		BlockedServices: []services.Service{application.Service("a", "cdn")},
		Groups:          []services.Group{{ID: "cdn"}, {ID: "gaming"}},
	}
	f := application.NewFixture(t, dest, application.Service("b", "ai"))

	out, err := run(t, f.Mock("table"))
	require.NoError(t, err)
	assert.Contains(t, out, "a has no source file and would be restored")
	assert.Contains(t, out, "group gaming has no services")
	assert.Contains(t, out, "Registry is valid")
	assert.NoFileExists(t, filepath.Join(f.Sources, "a.yml"))
}

func TestValidateIssues(t *testing.T) {
	bad := application.Service("b", "ai")
	bad.IconSVG = `<svg viewBox="0 0 24 12" fill="currentColor"></svg>`
	unknown := application.Service("c", "nope")
	f := application.NewFixture(t, &services.Artifact{}, bad, unknown)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, f.Mock("table"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Contains(t, out, "Found 1 issue(s)")
		assert.Contains(t, out, "nope")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, f.Mock("json"))
		require.Error(t, err)

		var r Report
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.False(t, r.Valid)
		assert.Equal(t, []Issue{{Kind: "group", Subject: "c", Problem: `unknown group: "nope"`}}, r.Issues)
	})
}

func TestNewReport(t *testing.T) {
	err := &errors.SvgValidationError{Issues: []errors.Issue{
		{RecordID: "b", Message: "The icon must have a square shape."},
	}}
	r := NewReport(nil, err)
	assert.False(t, r.Valid)
	assert.Equal(t, []Issue{{Kind: "icon", Subject: "b", Problem: "The icon must have a square shape."}}, r.Issues)
}
