// Package table implements the dashboard's generic list contract: an
// already-filtered collection in, a paginated page view out, with search
// helpers and per-row action affordances. The presenter performs no
// mutation; create/update/delete side effects belong to the caller.
package table

import "math"

// Pagination carries metadata for a paginated listing.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata. TotalPages is never below 1,
// so an empty collection still renders a degenerate single-page pager.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// SliceBounds returns the half-open index range visible on the page.
func (p Pagination) SliceBounds() (start, end int) {
	start = (p.Page - 1) * p.PerPage
	if start > p.Total {
		start = p.Total
	}
	end = start + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}
