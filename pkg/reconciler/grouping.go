package reconciler

import (
	"sort"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

// GroupAndSort derives the group list from records and returns the artifact
// with both collections sorted by id in byte order.
//
// Every record with an empty group is reported in one
// *errors.GroupValidationError. Empty input yields an empty artifact.
// The input slice is not reordered.
func GroupAndSort(records []services.Service) (*services.Artifact, error) {
	seen := make(map[string]struct{})
	groups := []services.Group{}
	var ungrouped []errors.GroupIssue

	for _, r := range records {
		if r.Group == "" {
			ungrouped = append(ungrouped, errors.GroupIssue{ID: r.ID})
			continue
		}
		if _, ok := seen[r.Group]; !ok {
			seen[r.Group] = struct{}{}
			groups = append(groups, services.Group{ID: r.Group})
		}
	}

	if len(ungrouped) > 0 {
		return nil, &errors.GroupValidationError{Reason: "missing group", Offenders: ungrouped}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })

	sorted := make([]services.Service, len(records))
	for i, r := range records {
		sorted[i] = r.Clone()
	}
	services.SortByID(sorted)

	art := &services.Artifact{BlockedServices: sorted, Groups: groups}
	art.Normalize()
	return art, nil
}
