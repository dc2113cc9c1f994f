package memory

import (
	"context"
	"sync"

	"github.com/bookstocknook/storefront/internal/domain"
	apperrors "github.com/bookstocknook/storefront/pkg/errors"
)

// Repository keeps the cart snapshot in process memory. It backs tests and
// the degraded mode used when Redis is unreachable at startup: the cart
// still works for the session, it simply does not survive a restart.
type Repository struct {
	mu   sync.RWMutex
	cart *domain.Cart
}

// NewRepository creates an empty in-memory cart repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Load returns the stored snapshot, or a not-found error before the first Save.
func (r *Repository) Load(_ context.Context) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cart == nil {
		return nil, apperrors.NotFound("cart", "memory")
	}
	return r.cart.Clone(), nil
}

// Save stores a copy of the snapshot.
func (r *Repository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cart = cart.Clone()
	return nil
}
