package driving

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// RuleManager exposes routing-rule administration.
type RuleManager interface {
	// AddRule validates and stores a new rule, assigning its id.
	AddRule(ctx context.Context, rule domain.RoutingRule) (*domain.RoutingRule, error)

	// ListRules returns all stored rules in matching order.
	ListRules(ctx context.Context) ([]domain.RoutingRule, error)

	// DeleteRule removes a rule by id.
	DeleteRule(ctx context.Context, id string) error
}
