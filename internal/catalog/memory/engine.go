package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/bookstocknook/storefront/internal/catalog"
	"github.com/bookstocknook/storefront/internal/domain"
	apperrors "github.com/bookstocknook/storefront/pkg/errors"
	"github.com/bookstocknook/storefront/pkg/pagination"
)

// Engine is an in-memory catalog over a fixed set of books. The catalog is
// read-only after construction, so lookups need no locking. Seed order is
// preserved and serves as the relevance order for listings.
type Engine struct {
	books  []domain.Book
	byID   map[string]int
	bySlug map[string]int
}

// New builds the catalog index from the given books. Seed order is kept.
func New(books []domain.Book) *Engine {
	e := &Engine{
		books:  make([]domain.Book, len(books)),
		byID:   make(map[string]int, len(books)),
		bySlug: make(map[string]int, len(books)),
	}
	copy(e.books, books)
	for i, b := range e.books {
		e.byID[b.ID] = i
		e.bySlug[b.Slug] = i
	}
	return e
}

// FindByID returns the book with the given ID.
func (e *Engine) FindByID(_ context.Context, id string) (*domain.Book, error) {
	idx, ok := e.byID[id]
	if !ok {
		return nil, apperrors.NotFound("book", id)
	}
	book := e.books[idx]
	return &book, nil
}

// FindBySlug returns the book with the given URL slug.
func (e *Engine) FindBySlug(_ context.Context, slug string) (*domain.Book, error) {
	idx, ok := e.bySlug[slug]
	if !ok {
		return nil, apperrors.NotFound("book", slug)
	}
	book := e.books[idx]
	return &book, nil
}

// List returns the books matching the filter, sorted and paginated.
func (e *Engine) List(_ context.Context, filter catalog.Filter, params pagination.Params) (*pagination.Result[domain.Book], error) {
	queryLower := strings.ToLower(filter.Query)
	authorLower := strings.ToLower(filter.Author)

	matched := make([]domain.Book, 0, len(e.books))
	for _, b := range e.books {
		if matches(b, filter, queryLower, authorLower) {
			matched = append(matched, b)
		}
	}

	sortBooks(matched, filter.SortBy)

	total := len(matched)
	offset := params.Offset
	if offset > total {
		offset = total
	}
	end := offset + params.PerPage
	if end > total {
		end = total
	}

	result := pagination.NewResult(matched[offset:end], total, params)
	return &result, nil
}

// Categories returns the browsing categories in display order.
func (e *Engine) Categories() []domain.Category {
	return domain.Categories()
}

func matches(b domain.Book, filter catalog.Filter, queryLower, authorLower string) bool {
	// Free-text match on title, ISBN and tags.
	if queryLower != "" {
		ok := strings.Contains(strings.ToLower(b.Title), queryLower) ||
			(b.ISBN != "" && strings.Contains(b.ISBN, filter.Query))
		if !ok {
			for _, tag := range b.Tags {
				if strings.Contains(strings.ToLower(tag), queryLower) {
					ok = true
					break
				}
			}
		}
		if !ok {
			return false
		}
	}

	if filter.Category != "" && b.Category != filter.Category {
		return false
	}

	if authorLower != "" && !strings.Contains(strings.ToLower(b.Author), authorLower) {
		return false
	}

	if filter.Condition != "" && b.Condition != filter.Condition {
		return false
	}

	if filter.MinPrice != nil && b.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && b.Price > *filter.MaxPrice {
		return false
	}

	if filter.Featured != nil && b.Featured != *filter.Featured {
		return false
	}
	if filter.Popular != nil && b.Popular != *filter.Popular {
		return false
	}

	return true
}

func sortBooks(books []domain.Book, sortBy string) {
	switch sortBy {
	case catalog.SortPriceAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price < books[j].Price
		})
	case catalog.SortPriceDesc:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price > books[j].Price
		})
	case catalog.SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Title < books[j].Title
		})
	default:
		// SortRelevance or unknown: keep seed order.
	}
}
