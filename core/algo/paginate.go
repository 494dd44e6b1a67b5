package algo

// Paginate returns the 1-based page of items and the total number of pages.
// A pageSize of zero or less returns everything as a single page.
// Pages out of range are empty.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		if len(items) == 0 {
			return []T{}, 0
		}
		if page != 1 {
			return []T{}, 1
		}
		return items, 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if page < 1 || page > totalPages {
		return []T{}, totalPages
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end], totalPages
}

// Limit returns the first n items. If n is zero or less, or greater than the
// number of items, all items are returned.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
