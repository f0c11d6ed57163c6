// Package locales builds the group name translation bundle from the
// per-locale translation files.
//
// Each locale directory holds a services.json file: an array of objects
// with a single key of the form "servicesgroup.<group>.name".
package locales

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/agentstation/hostlists/internal/fsutil"
	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
	"github.com/agentstation/hostlists/pkg/services"
)

var (
	localeNamePattern = regexp.MustCompile(`^[a-zA-Z_]+$`)
	keyPattern        = regexp.MustCompile(`^servicesgroup\.([a-z_]+)\.name$`)
)

// Name is the translated name of a group in one locale.
type Name struct {
	Name string `json:"name"`
}

// Bundle maps group id to locale to translated name.
type Bundle struct {
	Groups map[string]map[string]Name `json:"groups"`
}

// Locales returns every locale present in the bundle, sorted.
func (b *Bundle) Locales() []string {
	seen := make(map[string]struct{})
	for _, byLocale := range b.Groups {
		for loc := range byLocale {
			seen[loc] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the name of group in locale.
func (b *Bundle) Lookup(group, locale string) (string, bool) {
	n, ok := b.Groups[group][locale]
	return n.Name, ok
}

// Build reads every locale directory under dir. Locale directories without
// a translation file are skipped. Every invalid locale name or translation
// entry is reported in one *errors.LocalizationError.
func Build(ctx context.Context, dir string, valid *services.GroupSet) (*Bundle, error) {
	logger := logging.FromContext(logging.WithPath(ctx, dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("list", dir, err)
	}

	bundle := &Bundle{Groups: make(map[string]map[string]Name)}
	var issues []errors.Issue

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		locale := e.Name()
		file := filepath.Join(dir, locale, constants.LocaleFileName)

		data, err := os.ReadFile(file)
		if os.IsNotExist(err) {
			logger.Debug().Str("locale", locale).Msg("No translation file, skipping locale")
			continue
		}
		if err != nil {
			issues = append(issues, errors.Issue{RecordID: locale, Message: err.Error()})
			continue
		}

		if msg := checkLocaleName(locale); msg != "" {
			issues = append(issues, errors.Issue{RecordID: locale, Message: msg})
			continue
		}

		var chunks []map[string]json.RawMessage
		if err := json.Unmarshal(data, &chunks); err != nil {
			issues = append(issues, errors.Issue{RecordID: locale, Message: "expected an array of objects: " + err.Error()})
			continue
		}

		for i, chunk := range chunks {
			group, name, msg := parseEntry(chunk, valid)
			if msg != "" {
				issues = append(issues, errors.Issue{RecordID: fmt.Sprintf("%s[%d]", locale, i), Message: msg})
				continue
			}
			if bundle.Groups[group] == nil {
				bundle.Groups[group] = make(map[string]Name)
			}
			bundle.Groups[group][locale] = Name{Name: name}
		}
	}

	if len(issues) > 0 {
		return nil, &errors.LocalizationError{Dir: dir, Issues: issues}
	}

	logger.Debug().
		Int("groups", len(bundle.Groups)).
		Int("locales", len(bundle.Locales())).
		Msg("Built localization bundle")
	return bundle, nil
}

// checkLocaleName validates a locale directory name such as "en" or "zh_TW".
func checkLocaleName(name string) string {
	if !localeNamePattern.MatchString(name) {
		return "locale name must match " + localeNamePattern.String()
	}
	if _, err := language.Parse(strings.ReplaceAll(name, "_", "-")); err != nil {
		return "not a valid language tag: " + err.Error()
	}
	return ""
}

// parseEntry validates a single translation object.
func parseEntry(chunk map[string]json.RawMessage, valid *services.GroupSet) (group, name, msg string) {
	if len(chunk) != 1 {
		return "", "", fmt.Sprintf("expected exactly one key, got %d", len(chunk))
	}
	for key, raw := range chunk {
		m := keyPattern.FindStringSubmatch(key)
		if m == nil {
			return "", "", fmt.Sprintf("key %q must match servicesgroup.<group>.name", key)
		}
		if !valid.Has(m[1]) {
			return "", "", fmt.Sprintf("unknown group %q, expected one of: %s", m[1], strings.Join(valid.Names(), ", "))
		}
		if err := json.Unmarshal(raw, &name); err != nil {
			return "", "", fmt.Sprintf("value of %q must be a string", key)
		}
		group = m[1]
	}
	return group, name, ""
}

// Encode renders the bundle with sorted keys and a trailing newline.
func Encode(b *Bundle) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write atomically writes the bundle to path.
func Write(path string, b *Bundle) error {
	data, err := Encode(b)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	return WriteEncoded(path, data)
}

// WriteEncoded atomically writes bundle bytes produced by Encode to path.
func WriteEncoded(path string, data []byte) error {
	if err := fsutil.WriteFileAtomic(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
