package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// LookupResolver resolves display labels against a lookup field's bound
// list.
type LookupResolver struct {
	store driven.ContentStore
	log   logger.Logger
}

// NewLookupResolver creates a LookupResolver over the given store.
func NewLookupResolver(store driven.ContentStore, log logger.Logger) *LookupResolver {
	return &LookupResolver{store: store, log: log}
}

// Resolve finds the bound-list row for a candidate value. The bound
// column is queried for an exact match first; when nothing matches and
// the candidate parses as an integer, it is retried as a row id and the
// row's bound column supplies the label. Returns domain.ErrNotFound
// when neither path yields a row.
func (r *LookupResolver) Resolve(ctx context.Context, field domain.Field, candidate string) (*domain.LookupValue, error) {
	if field.LookupList == "" || field.LookupColumn == "" {
		return nil, fmt.Errorf("%w: field %q has no list binding", domain.ErrInvalidInput, field.Title)
	}
	items, err := r.store.QueryByColumn(ctx, field.LookupList, field.LookupColumn, candidate)
	if err != nil {
		return nil, fmt.Errorf("querying %q for %q: %w", field.LookupList, candidate, err)
	}
	if len(items) > 0 {
		return &domain.LookupValue{ID: items[0].ID, Label: candidate}, nil
	}
	if id, convErr := strconv.Atoi(candidate); convErr == nil {
		item, err := r.store.ItemByID(ctx, field.LookupList, id)
		if err == nil {
			return &domain.LookupValue{ID: item.ID, Label: item.Value(field.LookupColumn)}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("fetching row %d of %q: %w", id, field.LookupList, err)
		}
	}
	return nil, fmt.Errorf("%w: %q has no row matching %q", domain.ErrNotFound, field.LookupList, candidate)
}
