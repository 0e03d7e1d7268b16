package memoryrepo

import (
	"context"
	"sync"
	"time"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

// Repository is the in-memory order store. Records live in a primary map
// keyed by id; the order number is a secondary index mapping to the id, so
// the two lookup keys can never drift apart. All mutations happen under one
// mutex and operate on clones, never on caller-held pointers.
type Repository struct {
	mu       sync.RWMutex
	byID     map[string]*order.Order
	byNumber map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		byID:     make(map[string]*order.Order),
		byNumber: make(map[string]string),
	}
}

func (r *Repository) Insert(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[o.ID]; ok {
		return iorderrepo.ErrAlreadyExists
	}

	stored := o.Clone()
	r.byID[stored.ID] = stored
	r.byNumber[order.NormalizeNumber(stored.Number)] = stored.ID

	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, iorderrepo.ErrNotFound
	}

	return o.Clone(), nil
}

func (r *Repository) GetByNumber(_ context.Context, number string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, err := r.lookupByNumber(number)
	if err != nil {
		return nil, err
	}

	return o.Clone(), nil
}

func (r *Repository) Update(_ context.Context, id string, patch order.Patch) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, iorderrepo.ErrNotFound
	}

	updated := current.Clone()
	updated.Apply(patch)
	updated.UpdatedAt = time.Now()

	r.byID[id] = updated

	return updated.Clone(), nil
}

func (r *Repository) RecordShipment(_ context.Context, number, trackingNumber, carrier, estimatedDelivery string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.lookupByNumber(number)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	shipped := order.StatusShipped

	updated := current.Clone()
	updated.Apply(order.Patch{
		Status:            &shipped,
		TrackingNumber:    &trackingNumber,
		TrackingCarrier:   &carrier,
		EstimatedDelivery: &estimatedDelivery,
		ShippedAt:         &now,
	})
	updated.UpdatedAt = now

	r.byID[updated.ID] = updated

	return updated.Clone(), nil
}

// lookupByNumber resolves through the secondary index. Callers must hold at
// least the read lock.
func (r *Repository) lookupByNumber(number string) (*order.Order, error) {
	id, ok := r.byNumber[order.NormalizeNumber(number)]
	if !ok {
		return nil, iorderrepo.ErrNotFound
	}

	o, ok := r.byID[id]
	if !ok {
		return nil, iorderrepo.ErrNotFound
	}

	return o, nil
}
