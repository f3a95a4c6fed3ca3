package pagination

// Offset returns the zero-based row offset of a 1-based page.
func Offset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	return (page - 1) * size
}

// TotalPages is ceil(total/size), never less than 1.
func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// HasMore reports whether a page after current exists.
func HasMore(current, totalPages int) bool {
	return current < totalPages
}

// Window returns the [start, end) slice bounds of a page over n items.
func Window(n, page, size int) (int, int) {
	start := Offset(page, size)
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}
