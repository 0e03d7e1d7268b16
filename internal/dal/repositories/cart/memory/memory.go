package memoryrepo

import (
	"context"
	"sync"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
)

// Repository keeps cart sessions in process memory. Used in tests and for
// single-node deployments that do not run redis.
type Repository struct {
	mu       sync.RWMutex
	sessions map[string]cart.State
}

func NewRepository() *Repository {
	return &Repository{sessions: make(map[string]cart.State)}
}

func (r *Repository) Get(_ context.Context, sessionID string) (cart.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sessions[sessionID]
	if !ok {
		return cart.New(), nil
	}

	return clone(state), nil
}

func (r *Repository) Save(_ context.Context, sessionID string, state cart.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = clone(state)

	return nil
}

func (r *Repository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)

	return nil
}

func clone(s cart.State) cart.State {
	items := make([]cart.LineItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items

	return s
}
