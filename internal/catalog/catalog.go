package catalog

import (
	"context"

	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/pkg/pagination"
)

// Sort options for catalog listings. The default keeps seed order, which is
// the curated "relevance" order of the storefront.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
)

// Filter narrows a catalog listing. Zero values mean "no constraint";
// pointer fields distinguish "unset" from a zero bound.
type Filter struct {
	Query     string           // free-text over title, ISBN and tags
	Category  domain.Category  // exact match
	Author    string           // case-insensitive substring
	Condition domain.Condition // new/used, empty for any
	MinPrice  *int64           // inclusive, minor units
	MaxPrice  *int64           // inclusive, minor units
	Featured  *bool
	Popular   *bool
	SortBy    string
}

// Provider is a read-only view of the sellable book catalog.
type Provider interface {
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Book, error)
	List(ctx context.Context, filter Filter, params pagination.Params) (*pagination.Result[domain.Book], error)
	Categories() []domain.Category
}
