package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookstocknook/storefront/internal/event"
	"github.com/bookstocknook/storefront/internal/notify"
	"github.com/bookstocknook/storefront/pkg/validator"
)

// contactPublisher relays contact messages as domain events. A nil publisher
// means messages are only acknowledged and logged.
type contactPublisher interface {
	PublishContactMessage(ctx context.Context, data event.ContactMessageData) error
}

// ContactHandler handles the contact widget submissions.
type ContactHandler struct {
	events   contactPublisher
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(events contactPublisher, notifier notify.Notifier, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		events:   events,
		notifier: notifier,
		logger:   logger,
	}
}

// ContactRequest is the JSON request body for the contact widget.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	messageID := uuid.New().String()
	h.logger.InfoContext(r.Context(), "contact message received",
		slog.String("message_id", messageID),
		slog.String("email", req.Email),
	)

	if h.events != nil {
		err := h.events.PublishContactMessage(r.Context(), event.ContactMessageData{
			MessageID: messageID,
			Name:      req.Name,
			Email:     req.Email,
			Message:   req.Message,
		})
		if err != nil {
			h.logger.WarnContext(r.Context(), "failed to publish contact.message event",
				slog.String("error", err.Error()),
			)
		}
	}

	h.notifier.Notify(notify.Notification{
		Kind:        notify.KindContact,
		Title:       "Message sent!",
		Description: "Thanks for reaching out. We will get back to you soon.",
		Severity:    notify.SeverityDefault,
	})

	writeJSON(w, http.StatusAccepted, response{Data: map[string]string{
		"message_id": messageID,
		"status":     "received",
	}})
}
