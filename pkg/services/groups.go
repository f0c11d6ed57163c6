package services

import (
	"sort"

	"github.com/agentstation/hostlists/pkg/errors"
)

// DefaultGroupNames is the group enumeration shipped with the registry.
// The README group list must be kept in sync with it.
var DefaultGroupNames = []string{
	"ai",
	"cdn",
	"dating",
	"gambling",
	"gaming",
	"hosting",
	"messenger",
	"privacy",
	"shopping",
	"social_network",
	"software",
	"streaming",
}

// GroupSet is the closed set of valid group names.
type GroupSet struct {
	names map[string]struct{}
}

// NewGroupSet returns a set holding the given names. Empty names are ignored.
func NewGroupSet(names ...string) *GroupSet {
	gs := &GroupSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n != "" {
			gs.names[n] = struct{}{}
		}
	}
	return gs
}

// DefaultGroupSet returns a set holding DefaultGroupNames.
func DefaultGroupSet() *GroupSet {
	return NewGroupSet(DefaultGroupNames...)
}

// Has reports whether name is a valid group.
func (gs *GroupSet) Has(name string) bool {
	_, ok := gs.names[name]
	return ok
}

// Names returns the valid group names sorted.
func (gs *GroupSet) Names() []string {
	out := make([]string, 0, len(gs.names))
	for n := range gs.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of valid groups.
func (gs *GroupSet) Len() int {
	return len(gs.names)
}

// Check reports every record whose group is outside the set
// as a single *errors.GroupValidationError.
func (gs *GroupSet) Check(records []Service) error {
	var offenders []errors.GroupIssue
	for _, r := range records {
		if !gs.Has(r.Group) {
			offenders = append(offenders, errors.GroupIssue{ID: r.ID, Group: r.Group})
		}
	}
	if len(offenders) == 0 {
		return nil
	}
	return &errors.GroupValidationError{Reason: "unknown group", Offenders: offenders}
}
