package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
)

// Ensure ruleStore implements the interface.
var _ driven.RuleStore = (*ruleStore)(nil)

type ruleStore struct {
	store *Store
}

// Save stores a rule, assigning an id when unset. An existing id is
// overwritten in place.
func (r *ruleStore) Save(ctx context.Context, rule domain.RoutingRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO routing_rules (
			id, name, description, content_type_name, web_url,
			target_library, target_folder, priority, enabled,
			conditions_xml, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			content_type_name = excluded.content_type_name,
			web_url = excluded.web_url,
			target_library = excluded.target_library,
			target_folder = excluded.target_folder,
			priority = excluded.priority,
			enabled = excluded.enabled,
			conditions_xml = excluded.conditions_xml,
			updated_at = excluded.updated_at
	`,
		rule.ID, rule.Name, rule.Description, rule.ContentTypeName, rule.WebURL,
		rule.TargetLibrary, rule.TargetFolder, rule.Priority, rule.Enabled,
		rule.ConditionsXML, rule.CreatedAt.UTC().Format(time.RFC3339), rule.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving rule %s: %w", rule.ID, err)
	}
	return nil
}

// Get retrieves a rule by id.
func (r *ruleStore) Get(ctx context.Context, id string) (*domain.RoutingRule, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, content_type_name, web_url,
			target_library, target_folder, priority, enabled,
			conditions_xml, created_at, updated_at
		FROM routing_rules WHERE id = ?
	`, id)
	rule, err := scanRule(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting rule %s: %w", id, err)
	}
	return rule, nil
}

// List returns all rules ordered by priority, then name.
func (r *ruleStore) List(ctx context.Context) ([]domain.RoutingRule, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, name, description, content_type_name, web_url,
			target_library, target_folder, priority, enabled,
			conditions_xml, created_at, updated_at
		FROM routing_rules ORDER BY priority, name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.RoutingRule
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}
	return rules, nil
}

// Delete removes a rule by id.
func (r *ruleStore) Delete(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, "DELETE FROM routing_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rule %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting rule %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanRule(scan func(dest ...any) error) (*domain.RoutingRule, error) {
	var rule domain.RoutingRule
	var createdAt, updatedAt string
	err := scan(
		&rule.ID, &rule.Name, &rule.Description, &rule.ContentTypeName, &rule.WebURL,
		&rule.TargetLibrary, &rule.TargetFolder, &rule.Priority, &rule.Enabled,
		&rule.ConditionsXML, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rule.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rule.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rule, nil
}
