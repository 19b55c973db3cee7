package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/core/ports/driving"
	"github.com/clinidocs/docrouter/internal/logger"
)

// RuleService administers routing rules on top of a RuleStore.
type RuleService struct {
	rules driven.RuleStore
	log   logger.Logger
	now   func() time.Time
}

var _ driving.RuleManager = (*RuleService)(nil)

// NewRuleService creates a RuleService over the given store.
func NewRuleService(rules driven.RuleStore, log logger.Logger) *RuleService {
	return &RuleService{rules: rules, log: log, now: time.Now}
}

// AddRule validates and stores a new rule, assigning its id and
// timestamps. The conditions XML, when present, must parse.
func (s *RuleService) AddRule(ctx context.Context, rule domain.RoutingRule) (*domain.RoutingRule, error) {
	if rule.Name == "" || rule.ContentTypeName == "" || rule.TargetLibrary == "" {
		return nil, fmt.Errorf("%w: rule name, content type and target library are required", domain.ErrInvalidInput)
	}
	if _, err := domain.ParseConditions(rule.ConditionsXML); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := s.now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if err := s.rules.Save(ctx, rule); err != nil {
		return nil, fmt.Errorf("saving rule %q: %w", rule.Name, err)
	}
	s.log.Low("stored rule %q for content type %q", rule.Name, rule.ContentTypeName)
	return &rule, nil
}

// ListRules returns all stored rules in matching order.
func (s *RuleService) ListRules(ctx context.Context) ([]domain.RoutingRule, error) {
	return s.rules.List(ctx)
}

// DeleteRule removes a rule by id.
func (s *RuleService) DeleteRule(ctx context.Context, id string) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting rule %s: %w", id, err)
	}
	return nil
}
