package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// PrincipalResolver resolves display names to site principals, trying
// groups before users so group assignments survive the copy.
type PrincipalResolver struct {
	dir driven.PrincipalDirectory
	log logger.Logger
}

// NewPrincipalResolver creates a PrincipalResolver over the given
// directory.
func NewPrincipalResolver(dir driven.PrincipalDirectory, log logger.Logger) *PrincipalResolver {
	return &PrincipalResolver{dir: dir, log: log}
}

// Resolve maps a display name to a principal. Group names win over user
// names; an unresolvable name returns an error the caller converts to a
// skip-and-warn.
func (r *PrincipalResolver) Resolve(ctx context.Context, name string) (*domain.Principal, error) {
	group, err := r.dir.GroupByName(ctx, name)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up group %q: %w", name, err)
	}
	user, err := r.dir.EnsureUser(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolving principal %q: %w", name, err)
	}
	return user, nil
}
