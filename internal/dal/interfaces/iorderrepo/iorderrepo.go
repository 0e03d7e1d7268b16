package iorderrepo

import (
	"context"
	"errors"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

var (
	// ErrNotFound is returned when neither key resolves to an order. It is a
	// plain value so callers can translate it to a 404 without unwrapping
	// anything provider-specific.
	ErrNotFound = errors.New("order not found")

	// ErrAlreadyExists is returned by Insert on a duplicate order id. The
	// store never silently overwrites an existing record.
	ErrAlreadyExists = errors.New("order already exists")
)

// IOrderRepository is the data-access contract for orders. Every record is
// reachable by two keys, the internal id and the human order number, and any
// implementation must apply each mutation atomically so the two keys can
// never resolve to different versions of the same order.
type IOrderRepository interface {
	// Insert stores a fully-formed order under both keys.
	Insert(ctx context.Context, o *order.Order) error

	// GetByID returns the order with the given internal id.
	GetByID(ctx context.Context, id string) (*order.Order, error)

	// GetByNumber returns the order with the given order number. Lookup is
	// case-insensitive.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// Update merges the patch into the order with the given id and refreshes
	// UpdatedAt. The order number itself is immutable.
	Update(ctx context.Context, id string, patch order.Patch) (*order.Order, error)

	// RecordShipment sets the tracking fields, forces the status to shipped
	// and stamps ShippedAt if it is not already set. This is the only status
	// transition the store performs itself.
	RecordShipment(ctx context.Context, number, trackingNumber, carrier, estimatedDelivery string) (*order.Order, error)
}
