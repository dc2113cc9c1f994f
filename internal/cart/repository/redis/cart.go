package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookstocknook/storefront/internal/domain"
	apperrors "github.com/bookstocknook/storefront/pkg/errors"
)

// cartKey is the fixed key holding the serialized cart snapshot.
const cartKey = "bookstock:cart"

// Repository persists the cart snapshot as a single JSON blob in Redis.
type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepository creates a Redis-backed cart repository. A zero ttl keeps
// the snapshot forever.
func NewRepository(client *redis.Client, ttl time.Duration) *Repository {
	return &Repository{
		client: client,
		ttl:    ttl,
	}
}

// Load retrieves the cart snapshot from Redis.
func (r *Repository) Load(ctx context.Context) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", cartKey)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	if cart.SchemaVersion != domain.SchemaVersion {
		return nil, fmt.Errorf("unsupported cart schema version %d", cart.SchemaVersion)
	}

	return &cart, nil
}

// Save persists the cart snapshot to Redis with the configured TTL.
func (r *Repository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}
