// Package offset provides page-index pagination bookkeeping.
//
// A Coordinator owns the current page index, the page size and the page count
// derived from the remote total. It never performs I/O: every mutating method
// reports whether the visible page coordinate changed, and the caller issues
// exactly one fetch for each change.
//
// Example usage:
//
//	c := offset.New(20)
//	if c.NextPage() {
//	    page, err := fetcher.Fetch(ctx, c.Params(search))
//	    ...
//	    if c.OnFetchResult(page.Total) {
//	        // current page fell out of range and was clamped; fetch again
//	    }
//	}
package offset

import (
	"github.com/nrfta/gridview-go"
)

// State is a snapshot of the pagination coordinates.
//
// Invariants: TotalPages = ceil(total / PageSize) and
// 1 <= CurrentPage <= max(TotalPages, 1).
type State struct {
	CurrentPage int
	PageSize    int
	TotalPages  int
}

// Coordinator is the pagination state machine over {CurrentPage, PageSize}.
// It is not safe for concurrent use; the owner serializes access.
type Coordinator struct {
	currentPage int
	pageSize    int
	totalPages  int
	total       int
}

// New creates a Coordinator on page 1. A pageSize below 1 falls back to
// gridview.DefaultPageSize.
func New(pageSize int) *Coordinator {
	if pageSize < 1 {
		pageSize = gridview.DefaultPageSize
	}

	return &Coordinator{
		currentPage: 1,
		pageSize:    pageSize,
	}
}

// State returns the current coordinates.
func (c *Coordinator) State() State {
	return State{
		CurrentPage: c.currentPage,
		PageSize:    c.pageSize,
		TotalPages:  c.totalPages,
	}
}

// Params returns the fetch parameters for the current coordinates.
func (c *Coordinator) Params(search string) gridview.FetchParams {
	return gridview.FetchParams{
		PageIndex: c.currentPage,
		PageSize:  c.pageSize,
		Search:    search,
	}
}

// PageInfo returns navigation metadata for the current coordinates.
func (c *Coordinator) PageInfo() gridview.PageInfo {
	return gridview.NewOffsetBasedPageInfo(c.pageSize, c.total, c.currentPage)
}

// SetPageSize sets the page size and returns the user to the first page, so
// the next fetch never references an offset beyond the new page count.
// It always reports that a fetch is needed on success.
//
// The page count is recomputed from the last known total so that navigation
// bounds stay consistent until the next fetch result arrives.
func (c *Coordinator) SetPageSize(n int) (bool, error) {
	if n < 1 {
		return false, &gridview.InvalidParameterError{Name: "pageSize", Value: n, Reason: "must be at least 1"}
	}

	c.pageSize = n
	c.currentPage = 1
	c.totalPages = gridview.TotalPages(c.total, c.pageSize)
	return true, nil
}

// NextPage advances one page, saturating at the last page.
func (c *Coordinator) NextPage() bool {
	return c.GoToPage(c.currentPage + 1)
}

// PrevPage goes back one page, saturating at the first page.
func (c *Coordinator) PrevPage() bool {
	return c.GoToPage(c.currentPage - 1)
}

// FirstPage jumps to page 1.
func (c *Coordinator) FirstPage() bool {
	return c.GoToPage(1)
}

// LastPage jumps to the last known page.
func (c *Coordinator) LastPage() bool {
	return c.GoToPage(c.totalPages)
}

// GoToPage moves to page n clamped into [1, max(TotalPages, 1)] and reports
// whether the current page changed.
func (c *Coordinator) GoToPage(n int) bool {
	target := c.clamp(n)
	if target == c.currentPage {
		return false
	}

	c.currentPage = target
	return true
}

// ResetPage returns to page 1, used when a new search term is submitted.
func (c *Coordinator) ResetPage() bool {
	if c.currentPage == 1 {
		return false
	}

	c.currentPage = 1
	return true
}

// OnFetchResult records the remote total and recomputes the page count.
// When the current page no longer exists (the collection shrank) it is
// clamped into range and OnFetchResult reports true; the caller must fetch
// the clamped page.
func (c *Coordinator) OnFetchResult(total int) bool {
	if total < 0 {
		total = 0
	}

	c.total = total
	c.totalPages = gridview.TotalPages(total, c.pageSize)

	clamped := c.clamp(c.currentPage)
	if clamped == c.currentPage {
		return false
	}

	c.currentPage = clamped
	return true
}

// clamp bounds n into [1, max(totalPages, 1)].
func (c *Coordinator) clamp(n int) int {
	return max(1, min(n, max(c.totalPages, 1)))
}
