package models

// Page is a paginated window over a result set.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// NewPage slices all into the requested page. Pages past the end come back
// with empty items rather than an error.
func NewPage[T any](all []T, page, size int) Page[T] {
	total := len(all)
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := all[start:end]
	if len(items) == 0 {
		items = []T{}
	}

	return Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}
}
