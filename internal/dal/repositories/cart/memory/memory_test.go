package memoryrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryrepo "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/cart/memory"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
)

func TestGetMissingSessionReturnsEmptyCart(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()

	state, err := repo.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalItems)
}

func TestSaveAndGet(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()

	p := product.Product{ID: "p1", PriceCents: 3000}
	saved := cart.New().Add(p, 2, "Black", "Red", nil)
	require.NoError(t, repo.Save(ctx, "session-1", saved))

	loaded, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()

	p := product.Product{ID: "p1", PriceCents: 3000}
	require.NoError(t, repo.Save(ctx, "session-1", cart.New().Add(p, 1, "Black", "Red", nil)))
	require.NoError(t, repo.Delete(ctx, "session-1"))

	state, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, state.Items)
}

func TestStoredStateDoesNotAliasCaller(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()

	p := product.Product{ID: "p1", PriceCents: 3000}
	state := cart.New().Add(p, 1, "Black", "Red", nil)
	require.NoError(t, repo.Save(ctx, "session-1", state))

	state.Items[0].Quantity = 99

	loaded, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Items[0].Quantity)
}
