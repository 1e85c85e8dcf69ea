package gridview

// PageInfo contains metadata about the current page of a paginated result
// set, derived from the server-side total.
type PageInfo struct {
	TotalCount      int
	TotalPages      int
	CurrentPage     int
	Offset          int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewOffsetBasedPageInfo returns a PageInfo for a 1-based page index, filled
// in from the page size and the server total.
func NewOffsetBasedPageInfo(pageSize, totalCount, currentPage int) PageInfo {
	if pageSize < 1 {
		pageSize = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}

	totalPages := TotalPages(totalCount, pageSize)
	offset := (currentPage - 1) * pageSize

	return PageInfo{
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		CurrentPage:     currentPage,
		Offset:          offset,
		HasNextPage:     currentPage < totalPages,
		HasPreviousPage: currentPage > 1,
	}
}

// TotalPages returns ceil(total / pageSize), or 0 when either is not positive.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
