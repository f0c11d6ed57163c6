// Package differ detects drift between two sets of service records.
package differ

import (
	"sort"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

// Services returns the records of target whose id has no match in source,
// in target order. It returns nil when nothing is missing.
//
// Every target record must carry an id; otherwise an *errors.InputShapeError
// lists the offending positions.
func Services(target, source []services.Service) ([]services.Service, error) {
	var bad []int
	for i, t := range target {
		if t.ID == "" {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		return nil, &errors.InputShapeError{Collection: "blocked_services", Indexes: bad}
	}

	seen := make(map[string]struct{}, len(source))
	for _, s := range source {
		seen[s.ID] = struct{}{}
	}

	var missing []services.Service
	for _, t := range target {
		if _, ok := seen[t.ID]; !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}

// Groups returns the groups of target that are absent from source,
// in target order. It returns nil when nothing is missing.
func Groups(target, source []services.Group) []services.Group {
	seen := make(map[string]struct{}, len(source))
	for _, s := range source {
		seen[s.ID] = struct{}{}
	}

	var missing []services.Group
	for _, t := range target {
		if _, ok := seen[t.ID]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// Differ compares two registries field by field.
type Differ struct {
	ignoreFields map[string]bool
	maxValueLen  int
}

// New creates a Differ with default settings.
func New(opts ...Option) *Differ {
	d := &Differ{
		ignoreFields: make(map[string]bool),
		maxValueLen:  50,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Compare returns the changes needed to turn existing into updated.
func (d *Differ) Compare(existing, updated []services.Service) *Changeset {
	cs := &Changeset{
		Added:   []services.Service{},
		Updated: []Update{},
		Removed: []services.Service{},
	}

	existingMap := services.Index(existing)
	updatedMap := services.Index(updated)

	for _, u := range updated {
		if e, ok := existingMap[u.ID]; ok {
			if upd := d.service(e, u); upd != nil {
				cs.Updated = append(cs.Updated, *upd)
			}
		} else {
			cs.Added = append(cs.Added, u)
		}
	}

	for _, e := range existing {
		if _, ok := updatedMap[e.ID]; !ok {
			cs.Removed = append(cs.Removed, e)
		}
	}

	sort.Slice(cs.Added, func(i, j int) bool { return cs.Added[i].ID < cs.Added[j].ID })
	sort.Slice(cs.Updated, func(i, j int) bool { return cs.Updated[i].ID < cs.Updated[j].ID })
	sort.Slice(cs.Removed, func(i, j int) bool { return cs.Removed[i].ID < cs.Removed[j].ID })

	return cs
}

// service compares two records and returns an update if they differ.
func (d *Differ) service(existing, updated services.Service) *Update {
	var changes []FieldChange

	field := func(path, oldValue, newValue string) {
		if oldValue != newValue && !d.ignoreFields[path] {
			changes = append(changes, FieldChange{
				Path:     path,
				OldValue: truncate(oldValue, d.maxValueLen),
				NewValue: truncate(newValue, d.maxValueLen),
				Type:     ChangeTypeUpdate,
			})
		}
	}

	field("name", existing.Name, updated.Name)
	field("icon_svg", existing.IconSVG, updated.IconSVG)
	field("group", existing.Group, updated.Group)
	if !d.ignoreFields["rules"] {
		changes = append(changes, diffRules(existing.Rules, updated.Rules)...)
	}

	if len(changes) == 0 {
		return nil
	}
	return &Update{
		ID:       existing.ID,
		Existing: existing,
		New:      updated,
		Changes:  changes,
	}
}

// diffRules reports rules added and removed, ignoring order changes.
// A pure reorder is reported as a single update of the rules field.
func diffRules(existing, updated []string) []FieldChange {
	var changes []FieldChange

	old := make(map[string]bool, len(existing))
	for _, r := range existing {
		old[r] = true
	}
	cur := make(map[string]bool, len(updated))
	for _, r := range updated {
		cur[r] = true
	}

	for _, r := range updated {
		if !old[r] {
			changes = append(changes, FieldChange{Path: "rules", NewValue: r, Type: ChangeTypeAdd})
		}
	}
	for _, r := range existing {
		if !cur[r] {
			changes = append(changes, FieldChange{Path: "rules", OldValue: r, Type: ChangeTypeRemove})
		}
	}

	if len(changes) == 0 && !equalStrings(existing, updated) {
		changes = append(changes, FieldChange{Path: "rules", OldValue: "order", NewValue: "order", Type: ChangeTypeUpdate})
	}
	return changes
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
