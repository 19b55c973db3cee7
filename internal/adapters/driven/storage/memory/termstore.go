package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
)

// Ensure TermStore implements the interface.
var _ driven.TermStore = (*TermStore)(nil)

// TermStore is an in-memory taxonomy term store.
type TermStore struct {
	mu   sync.RWMutex
	sets map[string]map[string]domain.Term
}

// NewTermStore creates an empty term store.
func NewTermStore() *TermStore {
	return &TermStore{sets: make(map[string]map[string]domain.Term)}
}

// AddTerm registers a term in a set, assigning a GUID when unset, and
// returns it. A term with a zero WssID is stored as unbound.
func (s *TermStore) AddTerm(termSetID string, term domain.Term) domain.Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	if term.GUID == "" {
		term.GUID = uuid.NewString()
	}
	if term.WssID == 0 {
		term.WssID = domain.UnboundTermID
	}
	if s.sets[termSetID] == nil {
		s.sets[termSetID] = make(map[string]domain.Term)
	}
	s.sets[termSetID][term.Label] = term
	return term
}

// FindTerm searches a term set for an exact default-label match.
func (s *TermStore) FindTerm(_ context.Context, termSetID, label string) (*domain.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	term, ok := s.sets[termSetID][label]
	if !ok {
		return nil, fmt.Errorf("term %q in set %s: %w", label, termSetID, domain.ErrNotFound)
	}
	return &term, nil
}
