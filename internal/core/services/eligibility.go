package services

import (
	"context"
	"fmt"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// Eligibility finds the libraries that can receive a routed document of
// a given content type. Only document libraries with content type
// management enabled qualify, and the drop-off library never does.
type Eligibility struct {
	store driven.ContentStore
	log   logger.Logger
}

// NewEligibility creates an Eligibility index over the given store.
func NewEligibility(store driven.ContentStore, log logger.Logger) *Eligibility {
	return &Eligibility{store: store, log: log}
}

// LibrariesFor returns the eligible libraries carrying the named
// content type, in the store's listing order.
func (e *Eligibility) LibrariesFor(ctx context.Context, contentTypeName string) ([]domain.Library, error) {
	all, err := e.store.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}
	var eligible []domain.Library
	for _, lib := range all {
		if !lib.IsDocumentLibrary || lib.DropOff || !lib.ContentTypesEnabled {
			continue
		}
		if lib.HasContentType(contentTypeName) {
			eligible = append(eligible, lib)
		}
	}
	e.log.Low("%d libraries accept content type %q", len(eligible), contentTypeName)
	return eligible, nil
}
