package request

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Pagination is the limit/cursor pair shared by the list endpoints. Cursor
// is the last ID of the previous page; empty means start from the beginning.
type Pagination struct {
	Limit  int
	Cursor string
}

// ParsePagination reads limit and cursor from the query string. Absent or
// unparsable limits fall back to DefaultLimit; oversized ones are clamped.
func ParsePagination(r *http.Request) Pagination {
	q := r.URL.Query()

	limit := DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, MaxLimit)
		}
	}

	return Pagination{Limit: limit, Cursor: q.Get("cursor")}
}
