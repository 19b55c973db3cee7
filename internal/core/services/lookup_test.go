package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidocs/docrouter/internal/adapters/driven/storage/memory"
	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/logger"
)

func newLookupFixture(t *testing.T) (*memory.ContentStore, domain.Field, domain.Item) {
	t.Helper()
	store := memory.NewContentStore()
	store.AddLibrary(domain.Library{Title: "Studies", WebURL: "https://host/site"})
	row := store.AddItem("Studies", domain.Item{Name: "st001", Values: map[string]string{"Title": "ST-001"}})
	field := domain.Field{
		Title: "Study", Kind: domain.KindLookup,
		LookupList: "Studies", LookupColumn: "Title",
	}
	return store, field, row
}

func TestLookupResolverExactMatch(t *testing.T) {
	ctx := context.Background()
	store, field, row := newLookupFixture(t)
	r := NewLookupResolver(store, logger.Nop{})

	v, err := r.Resolve(ctx, field, "ST-001")
	require.NoError(t, err)
	assert.Equal(t, domain.LookupValue{ID: row.ID, Label: "ST-001"}, *v)
}

func TestLookupResolverIntegerFallback(t *testing.T) {
	ctx := context.Background()
	store, field, row := newLookupFixture(t)
	r := NewLookupResolver(store, logger.Nop{})

	v, err := r.Resolve(ctx, field, strconv.Itoa(row.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.LookupValue{ID: row.ID, Label: "ST-001"}, *v)
}

func TestLookupResolverNoMatch(t *testing.T) {
	ctx := context.Background()
	store, field, _ := newLookupFixture(t)
	r := NewLookupResolver(store, logger.Nop{})

	_, err := r.Resolve(ctx, field, "ST-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupResolverRequiresBinding(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newLookupFixture(t)
	r := NewLookupResolver(store, logger.Nop{})

	_, err := r.Resolve(ctx, domain.Field{Title: "Unbound", Kind: domain.KindLookup}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
