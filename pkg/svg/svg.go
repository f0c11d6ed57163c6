// Package svg checks the structure of inline SVG service icons.
//
// An icon is accepted when it is well-formed XML with an <svg> root that
// declares a square numeric viewBox, carries no width or height and sets
// fill="currentColor" so it follows the surrounding text color.
package svg

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

// Messages reported by Validate.
const (
	MsgInvalid        = "Parsed SVG object is invalid"
	MsgViewBox        = "The icon must have a viewBox attribute with four numbers."
	MsgSquare         = "The icon must have a square shape."
	MsgWidthHeight    = "Svg tag must not contain 'width' and 'height' attributes"
	MsgFillCurrentClr = `Svg tag must contain 'fill="currentColor"' attribute.`
)

// Result holds every problem found in one icon.
type Result struct {
	Issues []errors.Issue
}

// OK reports whether the icon passed every check.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

func (r *Result) add(id, msg string) {
	r.Issues = append(r.Issues, errors.Issue{RecordID: id, Message: msg})
}

// Validate runs every structural check against markup and reports each
// failure under recordID. Checks stop early only when the markup cannot be
// parsed or its root is not <svg>.
func Validate(markup, recordID string) Result {
	var res Result

	root, ok := parseRoot(markup)
	if !ok || root.Name.Local != "svg" {
		res.add(recordID, MsgInvalid)
		return res
	}

	attrs := make(map[string]string, len(root.Attr))
	for _, a := range root.Attr {
		if a.Name.Space == "" {
			attrs[a.Name.Local] = a.Value
		}
	}

	viewBox, hasViewBox := attrs["viewBox"]
	tokens := splitViewBox(viewBox)
	if !hasViewBox || !numeric(tokens) {
		res.add(recordID, MsgViewBox)
	}
	if len(tokens) == 4 && tokens[2] != tokens[3] {
		res.add(recordID, MsgSquare)
	}

	_, hasWidth := attrs["width"]
	_, hasHeight := attrs["height"]
	if hasWidth || hasHeight {
		res.add(recordID, MsgWidthHeight)
	}

	if attrs["fill"] != "currentColor" {
		res.add(recordID, MsgFillCurrentClr)
	}

	return res
}

// ValidateAll validates every record icon and returns nil or a single
// *errors.SvgValidationError listing every problem in record order.
func ValidateAll(records []services.Service) error {
	var issues []errors.Issue
	for _, r := range records {
		issues = append(issues, Validate(r.IconSVG, r.ID).Issues...)
	}
	if len(issues) == 0 {
		return nil
	}
	return &errors.SvgValidationError{Issues: issues}
}

// parseRoot reads the whole document and returns its first element.
// It fails on malformed XML and on documents without an element.
func parseRoot(markup string) (xml.StartElement, bool) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	var root *xml.StartElement
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return xml.StartElement{}, false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root == nil {
				el := t.Copy()
				root = &el
			} else if depth == 0 {
				// a second top-level element
				return xml.StartElement{}, false
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return xml.StartElement{}, false
			}
		}
	}
	if root == nil {
		return xml.StartElement{}, false
	}
	return *root, true
}

// number is a plain decimal as SVG writes it. Inf, NaN and hex forms are out.
var number = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// splitViewBox splits on whitespace only; "0,0,24,24" is one token.
func splitViewBox(v string) []string {
	return strings.Fields(v)
}

func numeric(tokens []string) bool {
	if len(tokens) != 4 {
		return false
	}
	for _, t := range tokens {
		if !number.MatchString(t) {
			return false
		}
	}
	return true
}
