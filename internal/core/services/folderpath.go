package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// FallbackStudyFolder receives documents whose study level is blank.
const FallbackStudyFolder = "General Clinical Files"

// FolderPath resolves the four-level destination folder chain
// (study, section, subsection, document type) under a library,
// creating missing folders on the way down.
type FolderPath struct {
	store driven.ContentStore
	log   logger.Logger
}

// NewFolderPath creates a FolderPath resolver over the given store.
func NewFolderPath(store driven.ContentStore, log logger.Logger) *FolderPath {
	return &FolderPath{store: store, log: log}
}

// Resolve ensures the folder chain for the given level values under the
// library and returns the deepest folder's URL. Level values arrive in
// their serialized field form and are flattened to bare labels. A blank
// study level falls back to FallbackStudyFolder; blank lower levels are
// passed through as-is and left to the store to refuse.
func (f *FolderPath) Resolve(ctx context.Context, libraryTitle, study, section, subsection, docType string) (string, error) {
	segments := []string{
		cleanSegment(study),
		cleanSegment(section),
		cleanSegment(subsection),
		cleanSegment(docType),
	}
	if segments[0] == "" {
		segments[0] = FallbackStudyFolder
	}
	url, err := f.store.EnsureFolder(ctx, libraryTitle, segments)
	if err != nil {
		return "", fmt.Errorf("ensuring folder path under %q: %w", libraryTitle, err)
	}
	f.log.Low("resolved folder path %s", url)
	return url, nil
}

// cleanSegment flattens a serialized field value to its display label:
// the reference prefix and any taxonomy guid suffix are stripped.
func cleanSegment(value string) string {
	value = domain.SubstringBefore(value, domain.TermLabelDelimiter)
	if strings.Contains(value, domain.RefSeparator) {
		value = domain.SubstringAfter(value, domain.RefSeparator)
	}
	return strings.TrimSpace(value)
}
