// Package pagination implements page/per_page windowing for the catalog
// endpoints. The catalog is small, so pages are offset-based; there is no
// cursor variant.
package pagination

import (
	"net/http"
	"strconv"
)

// The browse grid renders four columns, so the default page is a multiple
// of four. MaxPerPage bounds what a client can request in one call.
const (
	DefaultPerPage = 24
	MaxPerPage     = 60
)

// Params is a resolved page window. Offset is derived from Page and PerPage
// and is what the catalog engine slices with.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page at the default size.
func DefaultParams() Params {
	return Params{
		Page:    1,
		PerPage: DefaultPerPage,
	}
}

// FromRequest reads page and per_page from the query string. Unparseable or
// non-positive values fall back to the defaults; an oversized per_page is
// clamped to MaxPerPage rather than rejected.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Page = v
		}
	}

	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.PerPage = min(v, MaxPerPage)
		}
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Result is one page of items plus the counts a client needs to render
// pagination controls.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult wraps one page of data with its window metadata. A non-positive
// PerPage is treated as the default so the page math never divides by zero.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	if params.PerPage <= 0 {
		params.PerPage = DefaultPerPage
	}

	totalPages := (totalCount + params.PerPage - 1) / params.PerPage

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
