package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/internal/notify"
	"github.com/bookstocknook/storefront/pkg/validator"
)

// hintGenerator is the remote description-hint service. Implemented by
// hints.Client.
type hintGenerator interface {
	Generate(ctx context.Context, title string, category domain.Category) ([]string, bool)
}

// HintsHandler proxies seller description-hint requests to the AI service.
type HintsHandler struct {
	hints    hintGenerator
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewHintsHandler creates a new hints HTTP handler.
func NewHintsHandler(hints hintGenerator, notifier notify.Notifier, logger *slog.Logger) *HintsHandler {
	return &HintsHandler{
		hints:    hints,
		notifier: notifier,
		logger:   logger,
	}
}

// HintsRequest is the JSON request body for description hints.
type HintsRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=500"`
	Category string `json:"category" validate:"required"`
}

// HintsResponse carries the generated suggestions. Hints is never null,
// only possibly empty.
type HintsResponse struct {
	Hints []string `json:"hints"`
}

// Generate handles POST /api/v1/hints
//
// A hint-service failure is a soft failure: the response is still 200 with
// an empty list, and the feed gets an advisory notification.
func (h *HintsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req HintsRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	hints, ok := h.hints.Generate(r.Context(), req.Title, domain.Category(req.Category))
	if !ok {
		h.notifier.Notify(notify.Notification{
			Kind:        notify.KindHintsUnavailable,
			Title:       "Hints unavailable",
			Description: "Could not generate description hints right now. Try again later.",
			Severity:    notify.SeverityDestructive,
		})
	}
	if hints == nil {
		hints = []string{}
	}

	writeJSON(w, http.StatusOK, response{Data: HintsResponse{Hints: hints}})
}
