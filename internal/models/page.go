package models

// Page is one limit/offset window of an ordered result. Total counts every matching row.
type Page[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// EmptyPage returns a page with no rows and a non-nil item slice.
func EmptyPage[T any]() Page[T] {
	return Page[T]{Total: 0, Items: []T{}}
}
