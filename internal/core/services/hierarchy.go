package services

import (
	"context"
	"fmt"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// maxAncestryDepth bounds the parent walk so a miswired parent chain
// cannot loop forever.
const maxAncestryDepth = 32

// Hierarchy answers ancestry questions about content types. The root of
// a well-formed chain is the node whose parent carries its own name.
type Hierarchy struct {
	store driven.ContentStore
	log   logger.Logger
}

// NewHierarchy creates a Hierarchy over the given store.
func NewHierarchy(store driven.ContentStore, log logger.Logger) *Hierarchy {
	return &Hierarchy{store: store, log: log}
}

// NearestDistinctAncestor walks the parent chain of the named content
// type and returns the first ancestor whose name differs from it.
// Returns domain.ErrNotFound when the chain reaches its root without a
// distinct ancestor.
func (h *Hierarchy) NearestDistinctAncestor(ctx context.Context, name string) (*domain.ContentType, error) {
	current, err := h.store.ContentTypeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolving content type %q: %w", name, err)
	}
	for depth := 0; depth < maxAncestryDepth; depth++ {
		if current.ParentName == current.Name {
			return nil, fmt.Errorf("%w: content type %q has no distinct ancestor", domain.ErrNotFound, name)
		}
		parent, err := h.store.ContentTypeByName(ctx, current.ParentName)
		if err != nil {
			return nil, fmt.Errorf("resolving parent of %q: %w", current.Name, err)
		}
		if parent.Name != name {
			h.log.Low("content type %q resolves to ancestor %q", name, parent.Name)
			return parent, nil
		}
		current = parent
	}
	return nil, fmt.Errorf("content type %q: ancestry deeper than %d levels", name, maxAncestryDepth)
}
