package http

import (
	"net/http"

	"github.com/bookstocknook/storefront/internal/notify"
)

// NotificationsHandler exposes the recent notification feed. Reading is
// non-destructive; the ring evicts on its own.
type NotificationsHandler struct {
	feed *notify.Feed
}

// NewNotificationsHandler creates a new notifications HTTP handler.
func NewNotificationsHandler(feed *notify.Feed) *NotificationsHandler {
	return &NotificationsHandler{feed: feed}
}

// List handles GET /api/v1/notifications
func (h *NotificationsHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.feed.Recent()})
}
