package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
)

// Ensure Directory implements the interface.
var _ driven.PrincipalDirectory = (*Directory)(nil)

// Directory is an in-memory principal directory.
type Directory struct {
	mu     sync.RWMutex
	groups map[string]domain.Principal
	users  map[string]domain.Principal
	nextID int

	// AutoRegister makes EnsureUser create unknown users instead of
	// failing, mirroring a directory-backed site.
	AutoRegister bool
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		groups: make(map[string]domain.Principal),
		users:  make(map[string]domain.Principal),
	}
}

// AddGroup registers a site group and returns it.
func (d *Directory) AddGroup(name string) domain.Principal {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	p := domain.Principal{ID: d.nextID, Name: name, IsGroup: true}
	d.groups[name] = p
	return p
}

// AddUser registers a user and returns it.
func (d *Directory) AddUser(name string) domain.Principal {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	p := domain.Principal{ID: d.nextID, Name: name}
	d.users[name] = p
	return p
}

// GroupByName retrieves a site group by exact display name.
func (d *Directory) GroupByName(_ context.Context, name string) (*domain.Principal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.groups[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, domain.ErrNotFound)
	}
	return &p, nil
}

// EnsureUser resolves a user by name, creating it when AutoRegister is
// set.
func (d *Directory) EnsureUser(_ context.Context, name string) (*domain.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.users[name]; ok {
		return &p, nil
	}
	if !d.AutoRegister {
		return nil, fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
	}
	d.nextID++
	p := domain.Principal{ID: d.nextID, Name: name}
	d.users[name] = p
	return &p, nil
}
