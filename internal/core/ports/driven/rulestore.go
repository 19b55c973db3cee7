package driven

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// RuleStore persists routing rules.
type RuleStore interface {
	// Save stores a rule. Creates if new, updates if the id exists.
	Save(ctx context.Context, rule domain.RoutingRule) error

	// Get retrieves a rule by id.
	Get(ctx context.Context, id string) (*domain.RoutingRule, error)

	// List returns all rules ordered by priority, then name.
	List(ctx context.Context) ([]domain.RoutingRule, error)

	// Delete removes a rule by id.
	Delete(ctx context.Context, id string) error
}
