package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	apperrors "github.com/ariyanssg/rizz-pharmacy/pkg/errors"
)

// keyPrefix matches the storage key the web storefront used for its
// persisted cart blob, extended with the session ID.
const keyPrefix = "rizz_pharmacy_cart:"

// CartRepository implements repository.CartRepository using Redis. Each
// session's cart is stored as one JSON blob, not per line item.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository. Carts expire
// after the given TTL unless refreshed by a save.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cart blob for a session from Redis.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// Save persists the cart blob for a session to Redis with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	key := keyPrefix + sessionID

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes the stored cart blob for a session.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
