package domain

import "fmt"

// RouteMode is the shape of a routing decision.
type RouteMode int

const (
	// NoRoute leaves the document where it is.
	NoRoute RouteMode = iota
	// RouteDirect moves to a library that accepts the exact content type.
	RouteDirect
	// RouteViaParent moves to a library that accepts the nearest distinct
	// ancestor content type.
	RouteViaParent
)

// String names the mode for diagnostics.
func (m RouteMode) String() string {
	switch m {
	case RouteDirect:
		return "RouteDirect"
	case RouteViaParent:
		return "RouteViaParent"
	default:
		return "NoRoute"
	}
}

// Decision is the computed routing outcome for one document. It is
// recomputed fresh per document and never persisted.
type Decision struct {
	// Mode says whether and how the document moves.
	Mode RouteMode
	// Rule is the matched routing rule, nil when only a library matched.
	Rule *RoutingRule
	// Library is the destination library, nil for NoRoute.
	Library *Library
	// FolderPath is the nested folder chain under the library root.
	// Empty means the library's own location.
	FolderPath []string
}

// Signal is the standardized return to the hosting platform after a
// routing attempt.
type Signal int

const (
	// ContinueProcessing lets default placement proceed; the engine has
	// no opinion.
	ContinueProcessing Signal = iota
	// CancelFurtherProcessing means the engine fully handled placement.
	CancelFurtherProcessing
	// RejectFile keeps the document available for manual remediation.
	RejectFile
)

// String names the signal for diagnostics.
func (s Signal) String() string {
	switch s {
	case CancelFurtherProcessing:
		return "CancelFurtherProcessing"
	case RejectFile:
		return "RejectFile"
	default:
		return "ContinueProcessing"
	}
}

// FieldWarning records one field's failed transform during a metadata
// copy. Warnings never abort the copy.
type FieldWarning struct {
	// FieldTitle is the destination field's display title.
	FieldTitle string
	// Message is the underlying error text.
	Message string
}

// String renders the warning line appended to the document's diagnostic
// trail.
func (w FieldWarning) String() string {
	return fmt.Sprintf("Warning: [%s] %s", w.FieldTitle, w.Message)
}

// RoutingResult is the applied outcome of one routing attempt.
type RoutingResult struct {
	// Signal tells the platform what to do next.
	Signal Signal
	// Decision is the computed move plan.
	Decision Decision
	// NewURL is the document's destination, empty when not moved.
	NewURL string
	// Warnings collects per-field transform problems.
	Warnings []FieldWarning
	// Details is the free-text diagnostic string for the platform log.
	Details string
}
