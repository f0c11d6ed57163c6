package reconciler

import (
	"github.com/agentstation/hostlists/pkg/services"
)

// record builds a minimal valid service in the given group.
func record(id, group string) services.Service {
	return services.Service{
		ID:      id,
		Name:    id,
		Rules:   []string{"||" + id + ".com^"},
		IconSVG: `<svg viewBox="0 0 24 24" fill="currentColor"/>`,
		Group:   group,
	}
}

// named returns a copy of r with a different name, used to tell
// records with the same id apart.
func named(r services.Service, name string) services.Service {
	r.Name = name
	return r
}
