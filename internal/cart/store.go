package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bookstocknook/storefront/internal/cart/repository"
	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/internal/notify"
	apperrors "github.com/bookstocknook/storefront/pkg/errors"
)

// EventPublisher publishes cart domain events. Implemented by event.Producer;
// a nil publisher disables event publishing.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, reason string) error
}

// Store is the process-wide shopping cart. It owns the ordered list of line
// items, enforces the stock-bound quantity invariant, persists a snapshot
// after every mutation, and emits fire-and-forget notifications.
//
// All mutations serialize through the mutex. Stock violations and missing
// lines are never errors: they clamp or no-op and surface only as advisory
// notifications. Persistence failures are logged and swallowed; the
// in-memory cart keeps working for the session.
type Store struct {
	mu       sync.Mutex
	cart     *domain.Cart
	repo     repository.Repository
	notifier notify.Notifier
	events   EventPublisher
	logger   *slog.Logger
}

// NewStore creates the cart store and hydrates it from the repository. A
// missing or unreadable snapshot yields a fresh empty cart, never an error.
func NewStore(ctx context.Context, repo repository.Repository, notifier notify.Notifier, events EventPublisher, logger *slog.Logger) *Store {
	s := &Store{
		repo:     repo,
		notifier: notifier,
		events:   events,
		logger:   logger,
	}

	cart, err := repo.Load(ctx)
	switch {
	case err == nil:
		s.cart = cart
		logger.InfoContext(ctx, "cart restored from storage",
			slog.Int("lines", len(cart.Lines)),
			slog.Int("item_count", cart.ItemCount()),
		)
	case errors.Is(err, apperrors.ErrNotFound):
		s.cart = domain.NewCart()
		logger.InfoContext(ctx, "no stored cart, starting empty")
	default:
		s.cart = domain.NewCart()
		logger.WarnContext(ctx, "failed to restore cart, starting empty",
			slog.String("error", err.Error()),
		)
	}

	return s
}

// AddItem adds quantity units of the book to the cart, merging into an
// existing line for the same book ID. The resulting quantity is capped at
// the book's stock; a capped add fires a stock-limit notification instead
// of the usual added/updated one. Non-positive quantity is a no-op.
func (s *Store) AddItem(ctx context.Context, book domain.Book, quantity int) {
	if quantity <= 0 {
		s.logger.WarnContext(ctx, "ignoring add with non-positive quantity",
			slog.String("book_id", book.ID),
			slog.Int("quantity", quantity),
		)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cart.FindLineIndex(book.ID)
	if idx < 0 && book.Stock <= 0 {
		s.notifier.Notify(notify.Notification{
			Kind:        notify.KindStockLimit,
			Title:       "Stock limit reached",
			Description: fmt.Sprintf("%q is out of stock.", book.Title),
			Severity:    notify.SeverityDestructive,
		})
		return
	}

	var n notify.Notification
	if idx >= 0 {
		requested := s.cart.Lines[idx].Quantity + quantity
		if requested > book.Stock {
			s.cart.Lines[idx].Quantity = book.Stock
			n = stockLimitNotification(book)
		} else {
			s.cart.Lines[idx].Quantity = requested
			n = notify.Notification{
				Kind:        notify.KindItemUpdated,
				Title:       "Cart updated",
				Description: fmt.Sprintf("%q quantity increased to %d.", book.Title, requested),
				Severity:    notify.SeverityDefault,
			}
		}
	} else {
		if quantity > book.Stock {
			quantity = book.Stock
			n = stockLimitNotification(book)
		} else {
			n = notify.Notification{
				Kind:        notify.KindItemAdded,
				Title:       "Added to cart",
				Description: fmt.Sprintf("%q has been added to your cart.", book.Title),
				Severity:    notify.SeverityDefault,
			}
		}
		s.cart.Lines = append(s.cart.Lines, domain.Line{Book: book, Quantity: quantity})
	}

	s.commit(ctx)
	s.notifier.Notify(n)
	s.publishUpdated(ctx)
}

// RemoveItem deletes the line holding the given book ID. Absent ID is a
// silent no-op: no notification, no event.
func (s *Store) RemoveItem(ctx context.Context, bookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(ctx, bookID)
}

// UpdateQuantity sets the quantity of the line holding the given book ID.
// Zero or negative removes the line; above-stock clamps to the ceiling.
// Absent ID is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, bookID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, bookID)
		return
	}

	idx := s.cart.FindLineIndex(bookID)
	if idx < 0 {
		return
	}

	line := &s.cart.Lines[idx]
	var n notify.Notification
	if quantity > line.Stock {
		line.Quantity = line.Stock
		n = stockLimitNotification(line.Book)
	} else {
		line.Quantity = quantity
		n = notify.Notification{
			Kind:        notify.KindItemUpdated,
			Title:       "Cart updated",
			Description: fmt.Sprintf("%q quantity set to %d.", line.Title, quantity),
			Severity:    notify.SeverityDefault,
		}
	}

	s.commit(ctx)
	s.notifier.Notify(n)
	s.publishUpdated(ctx)
}

// Clear empties the cart unconditionally. The cleared notification fires
// even when the cart was already empty.
func (s *Store) Clear(ctx context.Context) {
	s.ClearWithReason(ctx, "user")
}

// ClearWithReason empties the cart and records why in the published event.
func (s *Store) ClearWithReason(ctx context.Context, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Lines = []domain.Line{}

	s.commit(ctx)
	s.notifier.Notify(notify.Notification{
		Kind:        notify.KindCartCleared,
		Title:       "Cart cleared",
		Description: "All items have been removed from your cart.",
		Severity:    notify.SeverityDefault,
	})

	if s.events != nil {
		if err := s.events.PublishCartCleared(ctx, reason); err != nil {
			s.logger.WarnContext(ctx, "failed to publish cart.cleared event",
				slog.String("error", err.Error()),
			)
		}
	}
}

// Snapshot returns a deep copy of the current cart.
func (s *Store) Snapshot() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Clone()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.Line, len(s.cart.Lines))
	copy(lines, s.cart.Lines)
	return lines
}

// Total returns the cart total in minor currency units, derived on every call.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.TotalAmount()
}

// ItemCount returns the total number of units across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.ItemCount()
}

func (s *Store) removeLocked(ctx context.Context, bookID string) {
	idx := s.cart.FindLineIndex(bookID)
	if idx < 0 {
		return
	}

	title := s.cart.Lines[idx].Title
	s.cart.Lines = append(s.cart.Lines[:idx], s.cart.Lines[idx+1:]...)

	s.commit(ctx)
	s.notifier.Notify(notify.Notification{
		Kind:        notify.KindItemRemoved,
		Title:       "Removed from cart",
		Description: fmt.Sprintf("%q has been removed from your cart.", title),
		Severity:    notify.SeverityDefault,
	})
	s.publishUpdated(ctx)
}

// commit stamps the mutation time and persists the snapshot. The in-memory
// state is already final when this runs; a failed save only costs durability.
func (s *Store) commit(ctx context.Context) {
	s.cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.cart); err != nil {
		s.logger.WarnContext(ctx, "failed to persist cart",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) publishUpdated(ctx context.Context) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCartUpdated(ctx, s.cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}

func stockLimitNotification(book domain.Book) notify.Notification {
	return notify.Notification{
		Kind:        notify.KindStockLimit,
		Title:       "Stock limit reached",
		Description: fmt.Sprintf("Only %d copies of %q available.", book.Stock, book.Title),
		Severity:    notify.SeverityDestructive,
	}
}
