package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/jasonsal23/offroad-paracord/internal/dal/redis"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
)

const defaultSessionTTL = 72 * time.Hour

// Repository stores cart state in redis, one JSON value per shopper session.
// Sessions expire after a TTL so abandoned carts clean themselves up.
type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRepository(client *redis.Client) *Repository {
	ttl := viper.GetDuration("cart.session_ttl")
	if ttl == 0 {
		ttl = defaultSessionTTL
	}

	return &Repository{
		client: client,
		ttl:    ttl,
	}
}

func key(sessionID string) string {
	return "cart:" + sessionID
}

func (r *Repository) Get(ctx context.Context, sessionID string) (cart.State, error) {
	raw, err := r.client.DB().Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return cart.State{}, fmt.Errorf("failed to load cart session: %w", err)
	}

	var state cart.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return cart.State{}, fmt.Errorf("failed to decode cart session: %w", err)
	}

	return state, nil
}

func (r *Repository) Save(ctx context.Context, sessionID string, state cart.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart session: %w", err)
	}

	if err := r.client.DB().Set(ctx, key(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.DB().Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart session: %w", err)
	}

	return nil
}
