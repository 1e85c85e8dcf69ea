// Package gridview provides the building blocks of a paginated, filterable,
// sortable table viewer: a page fetcher contract, the record schema shared by
// the filter and sort engines, and the error taxonomy of remote fetches.
//
// Subpackages:
//   - rest: fetches pages from an HTTP/JSON listing endpoint
//   - sqlboiler: fetches pages from a SQL table through SQLBoiler query mods
//   - offset: pagination coordinator (page index, page size, page count)
//   - filter: categorical and numeric range predicates over a fetched page
//   - sorting: tri-state single column sort
//   - view: projection and the Viewer component tying everything together
package gridview

import (
	"context"
	"time"
)

// PageFetcher retrieves one page of records from a remote collection.
// Implementations include rest.Client (HTTP/JSON) and sqlboiler.Fetcher (SQL).
//
// Type parameter T is the record type (e.g., catalog.Product).
//
// Fetch must not mutate any caller state: the caller decides whether the
// returned page is still wanted and updates its own state from it.
type PageFetcher[T any] interface {
	// Fetch returns the records at params.Offset() and the total number of
	// records matching params.Search in the remote collection.
	//
	// Errors are *TransportError, *MalformedResponseError or
	// *InvalidParameterError.
	Fetch(ctx context.Context, params FetchParams) (*Page[T], error)
}

// FetcherFunc adapts a function to the PageFetcher interface.
type FetcherFunc[T any] func(ctx context.Context, params FetchParams) (*Page[T], error)

// Fetch calls f(ctx, params).
func (f FetcherFunc[T]) Fetch(ctx context.Context, params FetchParams) (*Page[T], error) {
	return f(ctx, params)
}

// Page represents a single fetched page.
type Page[T any] struct {
	// Records contains the items for this page in remote order.
	Records []T

	// Total is the size of the full remote collection matching the search
	// term, independent of any local filter.
	Total int

	// Metadata provides observability information about the fetch.
	Metadata Metadata
}

// Metadata provides observability and debugging information about a fetch.
type Metadata struct {
	// Source identifies which fetcher produced the page.
	// Values: "rest", "sql"
	Source string

	// RequestID correlates log lines of a single fetch.
	RequestID string

	// QueryTime is the time spent waiting on the remote source.
	QueryTime time.Duration
}

// FetchParams contains all parameters needed to fetch a page of data.
type FetchParams struct {
	// PageIndex is the 1-based page number.
	PageIndex int

	// PageSize is the maximum number of records to fetch.
	PageSize int

	// Search is the optional search term. Fetchers switch to their search
	// query path when it is non-empty; the offset/limit contract is unchanged.
	Search string
}

// Offset returns the number of records to skip: (PageIndex - 1) * PageSize.
func (p FetchParams) Offset() int {
	if p.PageIndex < 1 {
		return 0
	}
	return (p.PageIndex - 1) * p.PageSize
}

// Validate returns an *InvalidParameterError when PageIndex or PageSize is
// below 1.
func (p FetchParams) Validate() error {
	if p.PageIndex < 1 {
		return &InvalidParameterError{Name: "pageIndex", Value: p.PageIndex, Reason: "must be at least 1"}
	}
	if p.PageSize < 1 {
		return &InvalidParameterError{Name: "pageSize", Value: p.PageSize, Reason: "must be at least 1"}
	}
	return nil
}
