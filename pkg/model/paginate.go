package model

// TotalPages is ceil(n/pageSize), never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	total := (n + pageSize - 1) / pageSize // Rounding up
	if total < 1 {
		return 1
	}
	return total
}

// Paginate returns the 1-based page of items. Callers keep page inside
// [1, TotalPages]; a page past the end yields an empty slice and a page
// below 1 is read as page 1.
func Paginate[T any](items []T, pageSize, page int) []T {
	start, end := pageRange(len(items), pageSize, page)
	return items[start:end]
}

// PageBounds returns the 1-based first and last item numbers shown on a
// page, e.g. "6-7 of 7". Both are 0 when the page is empty.
func PageBounds(n, pageSize, page int) (first, last int) {
	start, end := pageRange(n, pageSize, page)
	if start == end {
		return 0, 0
	}
	return start + 1, end
}

func pageRange(n, pageSize, page int) (start, end int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	start = (page - 1) * pageSize
	if start > n {
		start = n
	}
	end = start + pageSize
	if end > n {
		end = n
	}
	return start, end
}
