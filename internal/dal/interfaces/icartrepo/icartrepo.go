package icartrepo

import (
	"context"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
)

// ICartRepository stores cart state per shopper session. A session that has
// never been saved reads back as an empty cart, not an error: a cart with
// nothing in it and no cart at all are the same thing to the shopper.
type ICartRepository interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	Save(ctx context.Context, sessionID string, state cart.State) error
	Delete(ctx context.Context, sessionID string) error
}
