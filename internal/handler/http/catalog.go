package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookstocknook/storefront/internal/catalog"
	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/pkg/pagination"
)

// CatalogHandler handles HTTP requests for catalog browsing.
type CatalogHandler struct {
	catalog catalog.Provider
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(provider catalog.Provider, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: provider,
		logger:  logger,
	}
}

// ListBooks handles GET /api/v1/books
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	params := pagination.FromRequest(r)

	result, err := h.catalog.List(r.Context(), filter, params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result})
}

// GetBook handles GET /api/v1/books/{slug}
func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	book, err := h.catalog.FindBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: book})
}

// ListFeatured handles GET /api/v1/books/featured
func (h *CatalogHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	h.listFlagged(w, r, catalog.Filter{Featured: boolPtr(true)})
}

// ListPopular handles GET /api/v1/books/popular
func (h *CatalogHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	h.listFlagged(w, r, catalog.Filter{Popular: boolPtr(true)})
}

func (h *CatalogHandler) listFlagged(w http.ResponseWriter, r *http.Request, filter catalog.Filter) {
	if c := r.URL.Query().Get("category"); c != "" {
		filter.Category = domain.Category(c)
	}

	result, err := h.catalog.List(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.catalog.Categories()})
}

func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()

	filter := catalog.Filter{
		Query:  q.Get("search"),
		Author: q.Get("author"),
		SortBy: q.Get("sort"),
	}

	if c := q.Get("category"); c != "" && c != "all" {
		filter.Category = domain.Category(c)
	}
	if c := q.Get("condition"); c != "" && c != "all" {
		filter.Condition = domain.Condition(c)
	}
	if v := q.Get("min_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := q.Get("max_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxPrice = &p
		}
	}

	return filter
}

func boolPtr(v bool) *bool { return &v }
