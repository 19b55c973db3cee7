package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is an in-memory routing rule store.
type RuleStore struct {
	mu    sync.RWMutex
	rules map[string]domain.RoutingRule
}

// NewRuleStore creates an empty rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]domain.RoutingRule)}
}

// Save stores a rule, assigning an id when unset.
func (s *RuleStore) Save(_ context.Context, rule domain.RoutingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	s.rules[rule.ID] = rule
	return nil
}

// Get retrieves a rule by id.
func (s *RuleStore) Get(_ context.Context, id string) (*domain.RoutingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.rules[id]
	if !ok {
		return nil, fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}
	return &rule, nil
}

// List returns all rules ordered by priority, then name.
func (s *RuleStore) List(_ context.Context) ([]domain.RoutingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RoutingRule, 0, len(s.rules))
	for _, rule := range s.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Delete removes a rule by id.
func (s *RuleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[id]; !ok {
		return fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}
	delete(s.rules, id)
	return nil
}
