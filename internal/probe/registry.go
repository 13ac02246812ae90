package probe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/probelab/hdrprobe/internal/domain"
)

// Registry implements the ProberRegistry interface. Registration order is
// preserved because probes must run in source order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	probers map[string]domain.Prober
}

// NewRegistry creates a new prober registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:      sync.RWMutex{},
		order:   nil,
		probers: make(map[string]domain.Prober),
	}
}

// Register adds a prober to the registry.
func (r *Registry) Register(_ context.Context, prober domain.Prober) error {
	if prober == nil {
		return errors.New("prober cannot be nil")
	}

	name := prober.Name()
	if name == "" {
		return errors.New("prober name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.probers[name]; exists {
		return fmt.Errorf("prober %s already registered", name)
	}

	r.probers[name] = prober
	r.order = append(r.order, name)

	return nil
}

// Get retrieves a prober by name.
func (r *Registry) Get(_ context.Context, proberName string) (domain.Prober, error) {
	if proberName == "" {
		return nil, errors.New("prober name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	prober, exists := r.probers[proberName]
	if !exists {
		return nil, fmt.Errorf("prober %s not found", proberName)
	}

	return prober, nil
}

// List returns all registered prober names in registration order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)

	return names, nil
}
