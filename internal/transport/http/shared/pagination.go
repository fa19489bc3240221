package shared

import (
	"net/http"
	"strconv"
)

// Pagination bounds the admin request listing.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset query parameters. Bad values fall
// back to the defaults and the limit is clamped so one page cannot drain the
// whole request table.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := Pagination{Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		page.Offset = v
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}
