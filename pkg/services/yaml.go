package services

import (
	"bytes"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/hostlists/pkg/errors"
)

// sourceRecord mirrors Service for decoding so that an absent rules key
// can be told apart from an empty list.
type sourceRecord struct {
	ID      string    `yaml:"id"`
	Name    string    `yaml:"name"`
	Rules   *[]string `yaml:"rules"`
	IconSVG string    `yaml:"icon_svg"`
	Group   string    `yaml:"group"`
}

// FormatYAML renders a record as a source file: keys in field order,
// 2-space indentation and no line folding. The output for a given record
// is always byte-identical.
func FormatYAML(s Service) ([]byte, error) {
	if s.Rules == nil {
		s.Rules = []string{}
	}
	data, err := yaml.MarshalWithOptions(s,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, errors.WrapParse("yaml", s.ID, err)
	}
	return data, nil
}

// ParseYAML decodes a source file. Unknown keys are rejected and the
// decoded record must pass Validate.
func ParseYAML(data []byte) (Service, error) {
	var rec sourceRecord
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.Decode(&rec); err != nil {
		return Service{}, err
	}

	s := Service{
		ID:      rec.ID,
		Name:    rec.Name,
		IconSVG: rec.IconSVG,
		Group:   rec.Group,
	}
	if rec.Rules != nil {
		s.Rules = *rec.Rules
		if s.Rules == nil {
			s.Rules = []string{}
		}
	}
	if err := s.Validate(); err != nil {
		return Service{}, err
	}
	return s, nil
}
