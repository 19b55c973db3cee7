package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidocs/docrouter/internal/adapters/driven/storage/memory"
	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/logger"
)

func TestLibrariesForFiltersCandidates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewContentStore()
	store.AddLibrary(domain.Library{
		Title: "Drop Off", WebURL: "https://host/site", IsDocumentLibrary: true,
		ContentTypesEnabled: true, DropOff: true,
		ContentTypeNames: []string{"Safety Document"},
	})
	store.AddLibrary(domain.Library{
		Title: "Tasks", WebURL: "https://host/site",
		ContentTypesEnabled: true,
		ContentTypeNames:    []string{"Safety Document"},
	})
	store.AddLibrary(domain.Library{
		Title: "Plain Files", WebURL: "https://host/site", IsDocumentLibrary: true,
		ContentTypeNames: []string{"Safety Document"},
	})
	store.AddLibrary(domain.Library{
		Title: "Clinical Files", WebURL: "https://host/site", IsDocumentLibrary: true,
		ContentTypesEnabled: true,
		ContentTypeNames:    []string{"Safety Document", "Protocol"},
	})

	e := NewEligibility(store, logger.Nop{})

	libs, err := e.LibrariesFor(ctx, "Safety Document")
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, "Clinical Files", libs[0].Title)

	libs, err = e.LibrariesFor(ctx, "Unknown Type")
	require.NoError(t, err)
	assert.Empty(t, libs)
}
