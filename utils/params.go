package utils

import (
	"net/http"
	"strconv"
	"strings"
)

type QueryOptions struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	Desc     bool
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	return QueryOptions{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Desc:     q.Get("order") == "desc",
	}
}

// Paginate returns the bounds of the requested page over n items.
func (o QueryOptions) Paginate(n int) (start, end int) {
	start = (o.Page - 1) * o.Limit
	if start > n {
		start = n
	}
	end = start + o.Limit
	if end > n {
		end = n
	}
	return start, end
}

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
