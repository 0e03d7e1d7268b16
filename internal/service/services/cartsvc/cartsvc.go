package cartsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/icartrepo"
	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/icatalogrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrUnknownProduct  = errors.New("unknown product")
)

// CartService applies cart transitions for a shopper session. All business
// rules live in the cart model; this service only loads state, applies one
// pure transition and saves the result. Concurrent mutations of the same
// session are last-write-wins.
type CartService struct {
	carts   icartrepo.ICartRepository
	catalog icatalogrepo.ICatalogRepository
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.carts == nil || s.catalog == nil {
		panic("cartsvc: cart repository and catalog are required")
	}

	return s
}

// WithCartRepository sets the cart session store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartRepository(repo icartrepo.ICartRepository) option {
	return func(s *CartService) {
		s.carts = repo
	}
}

// WithCatalog sets the product catalog.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(catalog icatalogrepo.ICatalogRepository) option {
	return func(s *CartService) {
		s.catalog = catalog
	}
}

// Get returns the current cart for the session, empty if it has none.
func (s *CartService) Get(ctx context.Context, sessionID string) (cart.State, error) {
	return s.carts.Get(ctx, sessionID)
}

// Add resolves the product and merges the quantity into the session's cart.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, quantity int, primary, secondary string, note *string) (cart.State, error) {
	if quantity <= 0 {
		return cart.State{}, ErrInvalidQuantity
	}

	p, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, icatalogrepo.ErrNotFound) {
			return cart.State{}, ErrUnknownProduct
		}
		return cart.State{}, fmt.Errorf("failed to resolve product: %w", err)
	}

	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}

	next := state.Add(p, quantity, primary, secondary, note)
	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.State{}, err
	}

	return next, nil
}

// SetQuantity replaces the quantity of the matching line; zero or less
// removes it.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, primary, secondary string, quantity int) (cart.State, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}

	next := state.SetQuantity(productID, primary, secondary, quantity)
	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.State{}, err
	}

	return next, nil
}

// Remove drops every line matching the product and color selection.
func (s *CartService) Remove(ctx context.Context, sessionID, productID, primary, secondary string) (cart.State, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}

	next := state.Remove(productID, primary, secondary)
	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.State{}, err
	}

	return next, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.carts.Delete(ctx, sessionID)
}
