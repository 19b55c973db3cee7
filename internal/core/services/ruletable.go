package services

import (
	"context"
	"fmt"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// RuleTable matches content type names against the stored routing
// rules. Rules are consulted in the store's priority order and disabled
// rules never match.
type RuleTable struct {
	rules driven.RuleStore
	log   logger.Logger
}

// NewRuleTable creates a RuleTable over the given store.
func NewRuleTable(rules driven.RuleStore, log logger.Logger) *RuleTable {
	return &RuleTable{rules: rules, log: log}
}

// Match returns the first enabled rule that applies to the content type
// name, or domain.ErrNotFound when no rule matches.
func (t *RuleTable) Match(ctx context.Context, contentTypeName string) (*domain.RoutingRule, error) {
	rules, err := t.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing routing rules: %w", err)
	}
	for i := range rules {
		if !rules[i].Enabled {
			continue
		}
		if rules[i].Matches(contentTypeName) {
			t.log.Low("rule %q matches content type %q", rules[i].Name, contentTypeName)
			return &rules[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no rule for content type %q", domain.ErrNotFound, contentTypeName)
}
