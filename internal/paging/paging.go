// Package paging holds the listing pagination rules shared by every
// catalog screen.
package paging

// PageSize is the fixed number of items per listing page.
const PageSize = 10

// TotalPages reports how many pages a listing of total items spans.
// An empty listing still renders as a single page.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// HasPrev reports whether a "previous" control belongs on the page.
func HasPrev(page int) bool {
	return page > 0
}

// HasNext reports whether a "next" control belongs on the page.
func HasNext(page, total int) bool {
	return (page+1)*PageSize < total
}

// Clamp keeps a requested page inside the listing's valid range.
func Clamp(page, total int) int {
	if page < 0 {
		return 0
	}
	if last := TotalPages(total) - 1; page > last {
		return last
	}
	return page
}
