package model

// Page is a length-aware pagination result. It satisfies the paginator
// contract the response layer uses to build pagination metadata.
type Page[T any] struct {
	Rows    []T
	Current int
	Size    int
	Count   int
}

// NewPage builds a page from a row slice and the query window that produced it.
func NewPage[T any](rows []T, current, size, count int) Page[T] {
	if current < 1 {
		current = 1
	}
	if size < 1 {
		size = 1
	}
	return Page[T]{Rows: rows, Current: current, Size: size, Count: count}
}

// CurrentPage returns the 1-based page number.
func (p Page[T]) CurrentPage() int { return p.Current }

// PerPage returns the page size.
func (p Page[T]) PerPage() int { return p.Size }

// Total returns the total row count across all pages.
func (p Page[T]) Total() int { return p.Count }

// LastPage returns the number of the final page, never less than 1.
func (p Page[T]) LastPage() int {
	last := (p.Count + p.Size - 1) / p.Size
	if last < 1 {
		last = 1
	}
	return last
}

// HasMorePages reports whether pages beyond the current one exist.
func (p Page[T]) HasMorePages() bool {
	return p.Current < p.LastPage()
}

// Items returns the rows of the current page as an untyped slice, the shape
// the response envelope serializes.
func (p Page[T]) Items() any { return p.Rows }
