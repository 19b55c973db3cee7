package driven

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// TermStore searches managed taxonomy term sets.
type TermStore interface {
	// FindTerm searches a term set for a term whose default label equals
	// the given label. Returns domain.ErrNotFound when the set holds no
	// such term. The returned term carries the consuming site's list
	// binding id, or domain.UnboundTermID when the site is not yet bound.
	FindTerm(ctx context.Context, termSetID, label string) (*domain.Term, error)
}
