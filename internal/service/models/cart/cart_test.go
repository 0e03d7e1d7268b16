package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
)

func handles() product.Product {
	return product.Product{ID: "headrest-handles-001", Name: "Headrest Grab Handles", PriceCents: 3000}
}

func zipline() product.Product {
	return product.Product{ID: "pet-zipline-001", Name: "Pet Zipline", PriceCents: 3500}
}

func strptr(s string) *string { return &s }

func TestAdd(t *testing.T) {
	t.Parallel()

	t.Run("merges identical variants", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 2, "Black", "Red", nil).
			Add(handles(), 1, "Black", "Red", nil)

		require.Len(t, s.Items, 1)
		assert.Equal(t, 3, s.Items[0].Quantity)
		assert.Equal(t, 3, s.TotalItems)
		assert.Equal(t, int64(9000), s.TotalPriceCents)
	})

	t.Run("different colors make different lines", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 1, "Black", "Red", nil).
			Add(handles(), 1, "Black", "Blue", nil)

		require.Len(t, s.Items, 2)
		assert.Equal(t, 2, s.TotalItems)
	})

	t.Run("custom note is part of the line identity", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 1, "Black", "Red", nil).
			Add(handles(), 1, "Black", "Red", strptr("extra long")).
			Add(handles(), 1, "Black", "Red", strptr("extra long"))

		require.Len(t, s.Items, 2)
		assert.Equal(t, 1, s.Items[0].Quantity)
		assert.Equal(t, 2, s.Items[1].Quantity)
	})

	t.Run("nil note is distinct from empty note", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 1, "Black", "Red", nil).
			Add(handles(), 1, "Black", "Red", strptr(""))

		assert.Len(t, s.Items, 2)
	})

	t.Run("does not mutate the previous snapshot", func(t *testing.T) {
		t.Parallel()

		before := cart.New().Add(handles(), 1, "Black", "Red", nil)
		_ = before.Add(handles(), 5, "Black", "Red", nil)

		assert.Equal(t, 1, before.Items[0].Quantity)
		assert.Equal(t, 1, before.TotalItems)
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("removes every noted variant of the selection", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 1, "Black", "Red", nil).
			Add(handles(), 1, "Black", "Red", strptr("longer please")).
			Add(zipline(), 1, "Green", "Tan", nil).
			Remove("headrest-handles-001", "Black", "Red")

		require.Len(t, s.Items, 1)
		assert.Equal(t, "pet-zipline-001", s.Items[0].Product.ID)
		assert.Equal(t, int64(3500), s.TotalPriceCents)
	})

	t.Run("missing selection is a no-op", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 2, "Black", "Red", nil).
			Remove("headrest-handles-001", "Black", "Blue")

		assert.Len(t, s.Items, 1)
		assert.Equal(t, 2, s.TotalItems)
	})
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	t.Run("replaces the quantity", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 1, "Black", "Red", nil).
			SetQuantity("headrest-handles-001", "Black", "Red", 4)

		require.Len(t, s.Items, 1)
		assert.Equal(t, 4, s.Items[0].Quantity)
		assert.Equal(t, int64(12000), s.TotalPriceCents)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 3, "Black", "Red", nil).
			SetQuantity("headrest-handles-001", "Black", "Red", 0)

		assert.Empty(t, s.Items)
		assert.Zero(t, s.TotalItems)
		assert.Zero(t, s.TotalPriceCents)
	})

	t.Run("negative removes the line", func(t *testing.T) {
		t.Parallel()

		s := cart.New().
			Add(handles(), 3, "Black", "Red", nil).
			SetQuantity("headrest-handles-001", "Black", "Red", -1)

		assert.Empty(t, s.Items)
	})
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := cart.New().
		Add(handles(), 2, "Black", "Red", nil).
		Add(zipline(), 1, "Green", "Tan", nil).
		Clear()

	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
	assert.Zero(t, s.TotalPriceCents)
}

func TestTotalsAlwaysMatchItems(t *testing.T) {
	t.Parallel()

	s := cart.New().
		Add(handles(), 2, "Black", "Red", nil).
		Add(zipline(), 3, "Green", "Tan", strptr("short")).
		SetQuantity("pet-zipline-001", "Green", "Tan", 1).
		Add(handles(), 1, "Black", "Red", nil)

	var items int
	var cents int64
	for _, li := range s.Items {
		items += li.Quantity
		cents += li.Product.PriceCents * int64(li.Quantity)
	}

	assert.Equal(t, items, s.TotalItems)
	assert.Equal(t, cents, s.TotalPriceCents)
}
