package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

func TestRuleStoreSaveAssignsID(t *testing.T) {
	ctx := context.Background()
	s := NewRuleStore()

	require.NoError(t, s.Save(ctx, domain.RoutingRule{Name: "safety", ContentTypeName: "Safety Document"}))
	rules, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.NotEmpty(t, rules[0].ID)
}

func TestRuleStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewRuleStore()
	require.NoError(t, s.Save(ctx, domain.RoutingRule{ID: "b", Name: "beta", Priority: 2}))
	require.NoError(t, s.Save(ctx, domain.RoutingRule{ID: "a", Name: "alpha", Priority: 1}))
	require.NoError(t, s.Save(ctx, domain.RoutingRule{ID: "c", Name: "aardvark", Priority: 2}))

	rules, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "alpha", rules[0].Name)
	assert.Equal(t, "aardvark", rules[1].Name)
	assert.Equal(t, "beta", rules[2].Name)
}

func TestRuleStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewRuleStore()
	require.NoError(t, s.Save(ctx, domain.RoutingRule{ID: "a", Name: "alpha"}))

	require.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), domain.ErrNotFound)

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
