package locales

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

func writeLocale(t *testing.T, dir, locale, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, locale), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, locale, "services.json"), []byte(content), 0o644))
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	valid := services.DefaultGroupSet()

	t.Run("collects every locale", func(t *testing.T) {
		dir := t.TempDir()
		writeLocale(t, dir, "en", `[{"servicesgroup.cdn.name": "CDN"}, {"servicesgroup.ai.name": "AI"}]`)
		writeLocale(t, dir, "de", `[{"servicesgroup.cdn.name": "Inhaltsauslieferung"}]`)
		writeLocale(t, dir, "zh_TW", `[{"servicesgroup.ai.name": "人工智慧"}]`)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

		b, err := Build(ctx, dir, valid)
		require.NoError(t, err)
		assert.Equal(t, []string{"de", "en", "zh_TW"}, b.Locales())

		name, ok := b.Lookup("cdn", "de")
		assert.True(t, ok)
		assert.Equal(t, "Inhaltsauslieferung", name)

		_, ok = b.Lookup("ai", "de")
		assert.False(t, ok)
	})

	t.Run("every bad entry is reported", func(t *testing.T) {
		dir := t.TempDir()
		writeLocale(t, dir, "en", `[
			{"servicesgroup.cdn.name": "CDN"},
			{"servicesgroup.music.name": "Music"},
			{"group.cdn.name": "CDN"},
			{"servicesgroup.ai.name": "AI", "servicesgroup.cdn.name": "CDN"},
			{"servicesgroup.ai.name": 5}
		]`)
		writeLocale(t, dir, "en-US", `[]`)
		writeLocale(t, dir, "fr", `{"servicesgroup.cdn.name": "CDN"}`)

		_, err := Build(ctx, dir, valid)
		var lerr *errors.LocalizationError
		require.True(t, stderrors.As(err, &lerr), "got %v", err)

		var ids []string
		for _, is := range lerr.Issues {
			ids = append(ids, is.RecordID)
		}
		assert.Equal(t, []string{"en[1]", "en[2]", "en[3]", "en[4]", "en-US", "fr"}, ids)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Build(ctx, filepath.Join(t.TempDir(), "nope"), valid)
		assert.Error(t, err)
	})
}

func TestWrite(t *testing.T) {
	b := &Bundle{Groups: map[string]map[string]Name{
		"cdn": {"en": {Name: "CDN"}, "de": {Name: "CDN"}},
		"ai":  {"en": {Name: "AI & ML"}},
	}}
	path := filepath.Join(t.TempDir(), "assets", "services_i18n.json")
	require.NoError(t, Write(path, b))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{
  "groups": {
    "ai": {
      "en": {
        "name": "AI & ML"
      }
    },
    "cdn": {
      "de": {
        "name": "CDN"
      },
      "en": {
        "name": "CDN"
      }
    }
  }
}
`
	assert.Equal(t, want, string(data))
}
