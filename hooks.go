package hostlists

import (
	"sync"

	"github.com/agentstation/hostlists/pkg/differ"
	"github.com/agentstation/hostlists/pkg/services"
)

// Hook function types for service events
type (
	// ServiceAddedHook is called for a service that is new in the artifact
	ServiceAddedHook func(service services.Service)

	// ServiceUpdatedHook is called for a service whose content changed
	ServiceUpdatedHook func(old, new services.Service)

	// ServiceRestoredHook is called for a service whose source file was restored
	ServiceRestoredHook func(service services.Service)
)

// hooks manages event callbacks for artifact changes
type hooks struct {
	mu                sync.RWMutex
	onServiceAdded    []ServiceAddedHook
	onServiceUpdated  []ServiceUpdatedHook
	onServiceRestored []ServiceRestoredHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnServiceAdded registers a callback for services added to the artifact.
func (p *Pipeline) OnServiceAdded(fn ServiceAddedHook) {
	p.hooks.mu.Lock()
	defer p.hooks.mu.Unlock()
	p.hooks.onServiceAdded = append(p.hooks.onServiceAdded, fn)
}

// OnServiceUpdated registers a callback for services changed in the artifact.
func (p *Pipeline) OnServiceUpdated(fn ServiceUpdatedHook) {
	p.hooks.mu.Lock()
	defer p.hooks.mu.Unlock()
	p.hooks.onServiceUpdated = append(p.hooks.onServiceUpdated, fn)
}

// OnServiceRestored registers a callback for restored source files.
func (p *Pipeline) OnServiceRestored(fn ServiceRestoredHook) {
	p.hooks.mu.Lock()
	defer p.hooks.mu.Unlock()
	p.hooks.onServiceRestored = append(p.hooks.onServiceRestored, fn)
}

func (h *hooks) triggerRestored(restored []services.Service) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range restored {
		for _, hook := range h.onServiceRestored {
			hook(s)
		}
	}
}

// triggerChangeset fires added and updated hooks for a written artifact.
func (h *hooks) triggerChangeset(cs *differ.Changeset) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range cs.Added {
		for _, hook := range h.onServiceAdded {
			hook(s)
		}
	}
	for _, u := range cs.Updated {
		for _, hook := range h.onServiceUpdated {
			hook(u.Existing, u.New)
		}
	}
}
