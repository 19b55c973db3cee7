package driving

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// Router places one submitted document according to the routing rules
// and library eligibility.
type Router interface {
	// Route computes and applies the placement for a submission.
	// Per-field metadata problems are reported as warnings inside the
	// result; the returned error is reserved for fatal input or store
	// failures.
	Route(ctx context.Context, sub domain.Submission) (*domain.RoutingResult, error)
}
