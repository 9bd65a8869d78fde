// Package registry holds the closed whitelist of actions the gateway may run.
// The registry is populated once at startup and read-only afterwards; a lookup
// for an unregistered name always fails closed.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"macgate/internal/domain"
)

// ErrNotFound is returned for any name outside the whitelist.
var ErrNotFound = errors.New("action not registered")

type Registry struct {
	actions map[string]*domain.Action
}

func New() *Registry {
	return &Registry{actions: make(map[string]*domain.Action)}
}

// Register adds an action after validating it. Duplicate names are rejected so
// a later definition can never shadow an earlier one.
func (r *Registry) Register(a *domain.Action) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, exists := r.actions[a.Name]; exists {
		return fmt.Errorf("action %q already registered", a.Name)
	}
	r.actions[a.Name] = a
	return nil
}

// Lookup resolves a name to its action or fails with ErrNotFound. There is no
// fallback path to arbitrary command execution.
func (r *Registry) Lookup(name string) (*domain.Action, error) {
	a, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return a, nil
}

// List returns the registered action names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Count() int {
	return len(r.actions)
}
