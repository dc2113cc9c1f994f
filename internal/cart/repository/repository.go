package repository

import (
	"context"

	"github.com/bookstocknook/storefront/internal/domain"
)

// Repository defines the persistence contract for the cart snapshot.
// The store hydrates from Load once at startup and calls Save after every
// mutation; both degrade to no-ops when the backing store is unavailable.
type Repository interface {
	// Load retrieves the persisted cart snapshot. Returns a wrapped
	// errors.ErrNotFound when no prior save exists.
	Load(ctx context.Context) (*domain.Cart, error)

	// Save persists the cart snapshot, overwriting any existing one.
	Save(ctx context.Context, cart *domain.Cart) error
}
