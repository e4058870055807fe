package httpx

import (
	"net/http"
	"strconv"

	"github.com/clubdesk/clubdesk/internal/table"
)

// ListEnvelope is the uniform response shape for paginated collections.
type ListEnvelope struct {
	Data       any              `json:"data"`
	Pagination table.Pagination `json:"pagination"`
}

// List writes a paginated collection response.
func List(w http.ResponseWriter, data any, page, perPage, total int) {
	JSON(w, http.StatusOK, ListEnvelope{
		Data:       data,
		Pagination: table.NewPagination(page, perPage, total),
	})
}

// ListParams are the query parameters every list endpoint accepts.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Status  string
	SortBy  string
	SortDir string
}

// ParseListParams reads list query parameters with sane defaults.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	return ListParams{
		Page:    page,
		Limit:   limit,
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		SortBy:  q.Get("sort"),
		SortDir: q.Get("dir"),
	}
}
