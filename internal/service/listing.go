package service

import (
	"sort"
	"strings"
)

// ListQuery carries the table controls of the console: 1-based page, page
// size (0 = everything), sort field and direction ("asc" or "desc").
type ListQuery struct {
	Page     int
	PageSize int
	SortBy   string
	Order    string
}

// Page is one slice of a listing plus the total before paging.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (q ListQuery) descending() bool {
	return strings.EqualFold(q.Order, "desc")
}

// sortItems orders items in place by the comparator registered for
// q.SortBy. Unknown fields are rejected so typos surface to the operator.
func sortItems[T any](items []T, q ListQuery, less map[string]func(a, b *T) bool) error {
	if q.SortBy == "" {
		return nil
	}
	cmp, ok := less[q.SortBy]
	if !ok {
		return validationError("cannot sort by %q", q.SortBy)
	}
	desc := q.descending()
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return cmp(&items[j], &items[i])
		}
		return cmp(&items[i], &items[j])
	})
	return nil
}

func paginate[T any](items []T, q ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	total := len(items)
	if q.PageSize <= 0 {
		return Page[T]{Items: items, Total: total, Page: 1, PageSize: total}
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return Page[T]{Items: items[start:end], Total: total, Page: page, PageSize: q.PageSize}
}
