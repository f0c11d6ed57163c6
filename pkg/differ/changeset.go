package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/hostlists/pkg/services"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     // Field name (e.g., "rules")
	OldValue string     // Previous value
	NewValue string     // New value
	Type     ChangeType // Type of change
}

// Update represents an update to an existing service.
type Update struct {
	ID       string
	Existing services.Service
	New      services.Service
	Changes  []FieldChange
}

// Changeset represents all changes between two registries.
type Changeset struct {
	Added   []services.Service
	Updated []Update
	Removed []services.Service
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return len(c.Added)+len(c.Updated)+len(c.Removed) > 0
}

// Summary returns a one-line summary of the changeset.
func (c *Changeset) Summary() string {
	if !c.HasChanges() {
		return "no changes"
	}
	var parts []string
	if n := len(c.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(c.Updated); n > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", n))
	}
	if n := len(c.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	return strings.Join(parts, ", ")
}

// String renders a human-readable report of the changeset.
func (c *Changeset) String() string {
	var sb strings.Builder
	sb.WriteString(c.Summary())
	for _, s := range c.Added {
		fmt.Fprintf(&sb, "\n  + %s", s.ID)
	}
	for _, u := range c.Updated {
		fmt.Fprintf(&sb, "\n  ~ %s", u.ID)
		for _, ch := range u.Changes {
			fmt.Fprintf(&sb, "\n      %s", ch)
		}
	}
	for _, s := range c.Removed {
		fmt.Fprintf(&sb, "\n  - %s", s.ID)
	}
	return sb.String()
}

// String renders a single field change.
func (fc FieldChange) String() string {
	switch fc.Type {
	case ChangeTypeAdd:
		return fmt.Sprintf("%s: + %s", fc.Path, fc.NewValue)
	case ChangeTypeRemove:
		return fmt.Sprintf("%s: - %s", fc.Path, fc.OldValue)
	default:
		return fmt.Sprintf("%s: %s -> %s", fc.Path, fc.OldValue, fc.NewValue)
	}
}
