package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookstocknook/storefront/internal/cart"
	"github.com/bookstocknook/storefront/internal/catalog"
	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	store   *cart.Store
	catalog catalog.Provider
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(store *cart.Store, provider catalog.Provider, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: provider,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a book to the cart.
type AddItemRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest is the JSON request body for updating a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// cartView is the cart response shape, with the derived aggregates the
// storefront displays alongside the lines.
type cartView struct {
	Lines     []domain.Line `json:"lines"`
	ItemCount int           `json:"item_count"`
	Total     int64         `json:"total"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (h *CartHandler) view() cartView {
	snapshot := h.store.Snapshot()
	return cartView{
		Lines:     snapshot.Lines,
		ItemCount: snapshot.ItemCount(),
		Total:     snapshot.TotalAmount(),
		UpdatedAt: snapshot.UpdatedAt,
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.view()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	book, err := h.catalog.FindByID(r.Context(), req.BookID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.store.AddItem(r.Context(), *book, req.Quantity)

	writeJSON(w, http.StatusOK, response{Data: h.view()})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{bookID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.store.UpdateQuantity(r.Context(), bookID, req.Quantity)

	writeJSON(w, http.StatusOK, response{Data: h.view()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{bookID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	h.store.RemoveItem(r.Context(), bookID)

	writeJSON(w, http.StatusOK, response{Data: h.view()})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())

	writeJSON(w, http.StatusOK, response{Data: h.view()})
}
