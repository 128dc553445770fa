// Package pager splits a fixed list into numbered pages.
package pager

// DefaultSize is the number of items per page.
const DefaultSize = 6

// Pager tracks the current page of a list with a fixed item count. Pages are
// numbered from 1 and the current page always stays in [1, Total()].
type Pager struct {
	count int
	size  int
	page  int
}

// New returns a pager on page 1. A size below 1 falls back to DefaultSize.
func New(count, size int) Pager {
	if size < 1 {
		size = DefaultSize
	}
	if count < 0 {
		count = 0
	}
	return Pager{count: count, size: size, page: 1}
}

// Total returns ceil(count/size). An empty list still has one page.
func (p Pager) Total() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.size - 1) / p.size
}

func (p Pager) Page() int { return p.page }
func (p Pager) Size() int { return p.size }

func (p Pager) HasPrev() bool { return p.page > 1 }
func (p Pager) HasNext() bool { return p.page < p.Total() }

// Next moves forward one page, staying on the last page.
func (p Pager) Next() Pager { return p.Goto(p.page + 1) }

// Prev moves back one page, staying on page 1.
func (p Pager) Prev() Pager { return p.Goto(p.page - 1) }

// Goto moves to page n clamped into [1, Total()].
func (p Pager) Goto(n int) Pager {
	p.page = clamp(n, 1, p.Total())
	return p
}

// Bounds returns the half-open index range of the current page.
func (p Pager) Bounds() (start, end int) {
	start = (p.page - 1) * p.size
	end = min(start+p.size, p.count)
	return start, end
}

// Slice returns the items on the current page of items.
func Slice[T any](p Pager, items []T) []T {
	start, end := p.Bounds()
	if start >= len(items) {
		return nil
	}
	end = min(end, len(items))
	return items[start:end]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
