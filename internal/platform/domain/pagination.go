package domain

// PaginatedResult is one offset-based page of results.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	From  int   `json:"from"`
	Size  int   `json:"size"`
}

// NewPaginatedResult builds a page, normalizing a nil slice to empty.
func NewPaginatedResult[T any](items []T, total int64, from, size int) PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return PaginatedResult[T]{
		Items: items,
		Total: total,
		From:  from,
		Size:  size,
	}
}
