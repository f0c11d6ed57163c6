// Package reconciler merges service records from the compiled artifact and
// the source directory and derives the grouped, sorted artifact.
package reconciler

import (
	"github.com/agentstation/hostlists/pkg/services"
)

// Merge unions two record sets keyed by id. When both sets hold the same id
// the record from b wins. The result keeps the first-seen order of ids across
// a then b; callers that need a canonical order should use GroupAndSort.
//
// Neither input is modified and the result shares no rule slices with them.
func Merge(a, b []services.Service) []services.Service {
	byID := make(map[string]services.Service, len(a)+len(b))
	order := make([]string, 0, len(a)+len(b))

	put := func(records []services.Service) {
		for _, r := range records {
			if _, ok := byID[r.ID]; !ok {
				order = append(order, r.ID)
			}
			byID[r.ID] = r
		}
	}
	put(a)
	put(b)

	merged := make([]services.Service, len(order))
	for i, id := range order {
		merged[i] = byID[id].Clone()
	}
	return merged
}
