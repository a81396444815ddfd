package catalog

import "github.com/dtroode/shopfront/internal/model"

const (
	// DefaultPageSize is the number of products revealed per page.
	DefaultPageSize = 20
	// ScrollThreshold is how close to the bottom of the content a scroll
	// position must come to reveal the next page.
	ScrollThreshold = 200.0
)

// Window tracks how many pages of the result list are visible.
// Window is not safe for concurrent use.
type Window struct {
	pageSize  int
	threshold float64
	pageCount int
	near      bool
}

// NewWindow creates a Window showing one page of pageSize items.
func NewWindow(pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Window{
		pageSize:  pageSize,
		threshold: ScrollThreshold,
		pageCount: 1,
	}
}

func (w *Window) PageSize() int  { return w.pageSize }
func (w *Window) PageCount() int { return w.pageCount }

// Reset returns to the first page.
func (w *Window) Reset() {
	w.pageCount = 1
	w.near = false
}

// Visible returns the prefix of list covered by the current page count.
func (w *Window) Visible(list []model.Product) []model.Product {
	return VisibleSlice(list, w.pageCount, w.pageSize)
}

// HasMore reports whether items beyond the visible prefix exist.
func (w *Window) HasMore(total int) bool {
	return w.pageCount*w.pageSize < total
}

// Advance handles a scroll signal. It reveals one more page when the
// position comes within the threshold of the bottom, and reports whether it
// did. Only crossing into the threshold counts: repeated signals while
// already near the bottom change nothing.
func (w *Window) Advance(total int, distanceToBottom float64) bool {
	near := distanceToBottom <= w.threshold
	crossed := near && !w.near
	w.near = near

	if !crossed {
		return false
	}

	if w.pageCount >= maxPages(total, w.pageSize) {
		return false
	}

	w.pageCount++
	return true
}

// VisibleSlice returns list[:min(pageCount*pageSize, len(list))].
func VisibleSlice(list []model.Product, pageCount, pageSize int) []model.Product {
	n := min(pageCount*pageSize, len(list))
	if n < 0 {
		n = 0
	}
	return list[:n]
}

// DistanceToBottom converts a viewport position into the remaining distance
// to the end of the rendered content.
func DistanceToBottom(viewportHeight, scrollY, contentHeight float64) float64 {
	return contentHeight - (viewportHeight + scrollY)
}

func maxPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	return max(pages, 1)
}
