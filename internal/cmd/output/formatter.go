// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is the value of the --format flag.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes v to w in one format.
type Formatter interface {
	Format(w io.Writer, v any) error
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(io.Writer, any) error

func (f FormatterFunc) Format(w io.Writer, v any) error { return f(w, v) }

var formatters = map[Format]Formatter{
	FormatTable: FormatterFunc(writeTable),
	FormatJSON:  FormatterFunc(writeJSON),
	FormatYAML:  FormatterFunc(writeYAML),
}

// NewFormatter returns the formatter for format. Anything unknown, including
// the empty format, renders as a table.
func NewFormatter(format Format) Formatter {
	if f, ok := formatters[format]; ok {
		return f
	}
	return formatters[FormatTable]
}

// writeJSON keeps icons readable by not escaping <, > and &.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// writeTable renders Data. Reports that have no tabular shape go out as JSON.
func writeTable(w io.Writer, v any) error {
	var data Data
	switch d := v.(type) {
	case Data:
		data = d
	case *Data:
		data = *d
	default:
		return writeJSON(w, v)
	}

	var cfg tablewriter.Config
	if len(data.Align) > 0 {
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: data.Align}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: data.Align}
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(data.Headers) > 0 {
		table.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(cells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func cells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Data is a table. Align is per column; a missing entry or tw.Skip leaves
// the column at the renderer's default.
type Data struct {
	Headers []string
	Rows    [][]string
	Align   []tw.Align
}

func (d Data) Empty() bool { return len(d.Rows) == 0 }

// Title turns a snake_case key such as "icon_svg" into a header ("Icon Svg").
func Title(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// DetectFormat returns explicit when set. Otherwise a terminal gets a table
// and a pipe gets JSON.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a --format value. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "" {
		return f, nil
	}
	if _, ok := formatters[f]; !ok {
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
	return f, nil
}
