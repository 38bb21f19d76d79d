package helpers

import (
	"net/http"
	"strconv"

	"devevent/internal/domain"
)

// DefaultPage is used when the page query parameter is missing or invalid.
const DefaultPage = 1

// ParsePage reads page from the request query string. Invalid or missing
// values fall back to DefaultPage; the upper bound is applied by the caller
// once the total is known.
func ParsePage(r *http.Request, pageSize int) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}
