package notify

import "time"

// Severity controls how the UI renders a toast.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Kind identifies what a notification is about.
type Kind string

const (
	KindItemAdded        Kind = "item_added"
	KindItemUpdated      Kind = "item_updated"
	KindItemRemoved      Kind = "item_removed"
	KindStockLimit       Kind = "stock_limit"
	KindCartCleared      Kind = "cart_cleared"
	KindCheckout         Kind = "checkout"
	KindHintsUnavailable Kind = "hints_unavailable"
	KindContact          Kind = "contact"
	KindAuth             Kind = "auth"
)

// Notification is a fire-and-forget user-feedback message. It is advisory
// only and never consulted for control flow.
type Notification struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sink receives notifications drained from the queue. Implementations must
// not block for long; slow sinks delay delivery for everyone behind them.
type Sink interface {
	Deliver(n Notification)
}

// Notifier is the producer-facing side of the notification channel.
type Notifier interface {
	Notify(n Notification)
}
