package ai

import (
	"sort"
	"strings"

	"insight-backend/pkg/apperr"
)

// Registry resolves provider IDs to registered backends. It is populated at
// startup and read-only afterwards.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a backend under its own name.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get resolves a provider ID. Unknown IDs fail with a configuration error
// before any network call is made.
func (r *Registry) Get(providerID string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(providerID))]
	if !ok {
		return nil, apperr.NewProviderConfig(providerID)
	}
	return p, nil
}

// Names lists the registered provider IDs in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
