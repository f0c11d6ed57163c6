// Package docs renders a markdown catalog of the blocked services artifact.
package docs

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/hostlists/internal/locales"
	"github.com/agentstation/hostlists/pkg/services"
)

// DefaultTitle heads the generated document.
const DefaultTitle = "Blocked services"

// titleLocale is the locale used for group headings when a bundle is present.
const titleLocale = "en"

// Generator renders the catalog.
type Generator struct {
	title  string
	bundle *locales.Bundle
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithTitle sets the document heading.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithLocalizations adds a table of translated group names and uses the
// English names as section headings.
func WithLocalizations(b *locales.Bundle) Option {
	return func(g *Generator) {
		g.bundle = b
	}
}

// New creates a new documentation generator
func New(opts ...Option) *Generator {
	g := &Generator{title: DefaultTitle}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render writes the catalog for art to w. Groups and services appear in
// artifact order, which is sorted by id.
func (g *Generator) Render(w io.Writer, art *services.Artifact) error {
	byGroup := art.ServicesByGroup()

	doc := md.NewMarkdown(w)
	doc.H1(g.title).LF()
	doc.PlainTextf("%s in %s.",
		count(len(art.BlockedServices), "service", "services"),
		count(len(art.Groups), "group", "groups")).LF()

	doc.H2("Groups").LF()
	items := make([]string, 0, len(art.Groups))
	for _, grp := range art.Groups {
		items = append(items, fmt.Sprintf("%s: %s", md.Code(grp.ID), count(len(byGroup[grp.ID]), "service", "services")))
	}
	doc.BulletList(items...).LF()

	if g.bundle != nil && len(g.bundle.Groups) > 0 {
		g.localizations(doc, art.Groups)
	}

	for _, grp := range art.Groups {
		doc.H2(g.groupTitle(grp.ID)).LF()
		rows := make([][]string, 0, len(byGroup[grp.ID]))
		for _, s := range byGroup[grp.ID] {
			rows = append(rows, []string{md.Code(s.ID), escapeCell(s.Name), strconv.Itoa(len(s.Rules))})
		}
		doc.Table(md.TableSet{
			Header: []string{"ID", "Name", "Rules"},
			Rows:   rows,
		}).LF()
	}

	return doc.Build()
}

func (g *Generator) localizations(doc *md.Markdown, groups []services.Group) {
	locs := g.bundle.Locales()
	header := append([]string{"Group"}, locs...)
	rows := make([][]string, 0, len(groups))
	for _, grp := range groups {
		row := []string{md.Code(grp.ID)}
		for _, loc := range locs {
			name, ok := g.bundle.Lookup(grp.ID, loc)
			if !ok {
				name = "-"
			}
			row = append(row, escapeCell(name))
		}
		rows = append(rows, row)
	}
	doc.H2("Localized group names").LF()
	doc.Table(md.TableSet{Header: header, Rows: rows}).LF()
}

// groupTitle prefers the English translation and falls back to the
// title-cased group id, "social_network" becoming "Social Network".
func (g *Generator) groupTitle(id string) string {
	if g.bundle != nil {
		if name, ok := g.bundle.Lookup(id, titleLocale); ok && name != "" {
			return name
		}
	}
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func count(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// escapeCell keeps pipes in service names from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
