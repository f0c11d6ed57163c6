// Package services defines the records of the blocked services registry:
// the per-service record, the derived group record and the compiled artifact
// that carries both.
package services

import (
	"sort"
	"strings"

	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/errors"
)

// Service is a single blocked service. Field order is the key order
// used when the record is written back to disk.
type Service struct {
	ID      string   `json:"id" yaml:"id"`             // Unique service identifier, also the source file name
	Name    string   `json:"name" yaml:"name"`         // Display name
	Rules   []string `json:"rules" yaml:"rules"`       // Filtering rules, order is significant
	IconSVG string   `json:"icon_svg" yaml:"icon_svg"` // Inline SVG icon markup
	Group   string   `json:"group" yaml:"group"`       // Group id, one of the valid group names
}

// Group is a group record. Groups are derived from services and never edited directly.
type Group struct {
	ID string `json:"id" yaml:"id"`
}

// Artifact is the compiled registry. Both collections are sorted by id.
type Artifact struct {
	BlockedServices []Service `json:"blocked_services" yaml:"blocked_services"`
	Groups          []Group   `json:"groups" yaml:"groups"`
}

// Validate checks that the record carries every required field.
// It returns a *errors.ValidationError naming the first missing field.
func (s Service) Validate() error {
	switch {
	case s.ID == "":
		return errors.NewValidationError("id", s.ID, "is required")
	case len(s.ID) > constants.MaxServiceIDLength:
		return errors.NewValidationError("id", s.ID, "is too long")
	case s.ID == "." || s.ID == ".." || strings.ContainsAny(s.ID, `/\`):
		return errors.NewValidationError("id", s.ID, "must be usable as a file name")
	case s.Name == "":
		return errors.NewValidationError("name", s.Name, "is required")
	case s.Rules == nil:
		return errors.NewValidationError("rules", s.Rules, "is required")
	case s.IconSVG == "":
		return errors.NewValidationError("icon_svg", s.IconSVG, "is required")
	case s.Group == "":
		return errors.NewValidationError("group", s.Group, "is required")
	}
	return nil
}

// Equal reports whether two records carry identical content.
func (s Service) Equal(other Service) bool {
	if s.ID != other.ID || s.Name != other.Name || s.IconSVG != other.IconSVG || s.Group != other.Group {
		return false
	}
	if len(s.Rules) != len(other.Rules) {
		return false
	}
	for i := range s.Rules {
		if s.Rules[i] != other.Rules[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the record.
func (s Service) Clone() Service {
	if s.Rules != nil {
		s.Rules = append([]string{}, s.Rules...)
	}
	return s
}

// IDs returns the ids of the given services in order.
func IDs(records []Service) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// GroupIDs returns the ids of the given groups in order.
func GroupIDs(groups []Group) []string {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids
}

// Index returns the records keyed by id. Later records win.
func Index(records []Service) map[string]Service {
	m := make(map[string]Service, len(records))
	for _, r := range records {
		m[r.ID] = r
	}
	return m
}

// SortByID sorts records in place by id in byte order.
func SortByID(records []Service) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}

// Normalize replaces nil collections with empty ones so the artifact
// encodes them as [] rather than null.
func (a *Artifact) Normalize() {
	if a.BlockedServices == nil {
		a.BlockedServices = []Service{}
	}
	if a.Groups == nil {
		a.Groups = []Group{}
	}
	for i := range a.BlockedServices {
		if a.BlockedServices[i].Rules == nil {
			a.BlockedServices[i].Rules = []string{}
		}
	}
}

// ServicesByGroup returns the services of each group, keyed by group id.
func (a *Artifact) ServicesByGroup() map[string][]Service {
	out := make(map[string][]Service, len(a.Groups))
	for _, s := range a.BlockedServices {
		out[s.Group] = append(out[s.Group], s)
	}
	return out
}
