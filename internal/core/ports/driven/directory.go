package driven

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// PrincipalDirectory resolves display names to site principals.
type PrincipalDirectory interface {
	// GroupByName retrieves a site group by exact display name.
	// Returns domain.ErrNotFound when no group carries the name.
	GroupByName(ctx context.Context, name string) (*domain.Principal, error)

	// EnsureUser resolves a user by login or display name, registering
	// the user with the site when first seen. Returns an error when the
	// directory cannot resolve the name at all.
	EnsureUser(ctx context.Context, name string) (*domain.Principal, error)
}
