package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bookstocknook/storefront/internal/cart"
	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/internal/notify"
)

// checkoutPublisher publishes the checkout completion event. A nil publisher
// disables event publishing.
type checkoutPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, orderID string, cart *domain.Cart) error
}

// CheckoutHandler simulates order placement. There is no payment and no
// inventory authority: after a fixed processing delay the cart is cleared
// and a summary is returned.
type CheckoutHandler struct {
	store    *cart.Store
	notifier notify.Notifier
	events   checkoutPublisher
	delay    time.Duration
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(store *cart.Store, notifier notify.Notifier, events checkoutPublisher, delay time.Duration, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		store:    store,
		notifier: notifier,
		events:   events,
		delay:    delay,
		logger:   logger,
	}
}

// OrderSummary is the checkout response payload.
type OrderSummary struct {
	OrderID   string `json:"order_id"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	if len(snapshot.Lines) == 0 {
		h.notifier.Notify(notify.Notification{
			Kind:        notify.KindCheckout,
			Title:       "Your cart is empty",
			Description: "Add some books before checking out.",
			Severity:    notify.SeverityDestructive,
		})
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "EMPTY_CART", Message: "cart is empty"},
		})
		return
	}

	// Simulated processing time; a closed connection abandons the order.
	select {
	case <-time.After(h.delay):
	case <-r.Context().Done():
		return
	}

	orderID := uuid.New().String()
	summary := OrderSummary{
		OrderID:   orderID,
		ItemCount: snapshot.ItemCount(),
		Total:     snapshot.TotalAmount(),
	}

	h.store.ClearWithReason(r.Context(), "checkout")
	h.notifier.Notify(notify.Notification{
		Kind:        notify.KindCheckout,
		Title:       "Order placed!",
		Description: "Thank you for your purchase. Your books are on their way.",
		Severity:    notify.SeverityDefault,
	})

	if h.events != nil {
		if err := h.events.PublishCheckoutCompleted(r.Context(), orderID, snapshot); err != nil {
			h.logger.WarnContext(r.Context(), "failed to publish checkout.completed event",
				slog.String("error", err.Error()),
			)
		}
	}

	writeJSON(w, http.StatusOK, response{Data: summary})
}
