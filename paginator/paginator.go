// Package paginator splits a slice into fixed-size pages, the generic
// counterpart of the iterator-range paginator the spec lists as an
// external collaborator rather than part of the core.
package paginator

// Page is a contiguous, non-overlapping view into the original slice.
type Page[T any] struct {
	items []T
}

// Items returns the page's elements.
func (p Page[T]) Items() []T {
	return p.items
}

// Len reports how many elements the page holds.
func (p Page[T]) Len() int {
	return len(p.items)
}

// Paginate splits items into pages of at most pageSize elements each, in
// order. The last page may be shorter than pageSize. Paginate(items, 0)
// or an empty items returns no pages.
func Paginate[T any](items []T, pageSize int) []Page[T] {
	if pageSize <= 0 || len(items) == 0 {
		return nil
	}

	pages := make([]Page[T], 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, Page[T]{items: items[start:end]})
	}
	return pages
}
