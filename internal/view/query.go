package view

import (
	"strconv"

	"admin-console/internal/backend"
)

// ListQuery is the per-view search, filter and paging state.
type ListQuery struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int
}

func newListQuery(limit int) *ListQuery {
	return &ListQuery{Filters: map[string]string{}, Page: 1, Limit: limit}
}

func (q ListQuery) clone() ListQuery {
	out := q
	out.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		out.Filters[k] = v
	}
	return out
}

// Params encodes the query for a list endpoint. skip is sent only past the
// first page.
func (q ListQuery) Params() backend.Params {
	params := backend.Params{"limit": strconv.Itoa(q.Limit), "search": q.Search}
	for key, value := range q.Filters {
		params[key] = value
	}
	if skip := (q.Page - 1) * q.Limit; skip > 0 {
		params["skip"] = strconv.Itoa(skip)
	}
	return params
}

// Pages is ceil(total/limit), never less than one.
func (q ListQuery) Pages(total int) int {
	if q.Limit <= 0 || total <= 0 {
		return 1
	}
	return (total + q.Limit - 1) / q.Limit
}

// Clamp keeps the page index inside [1, Pages(total)].
func (q *ListQuery) Clamp(total int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if pages := q.Pages(total); q.Page > pages {
		q.Page = pages
	}
}
