package view

import (
	"github.com/aarondl/strmangle"

	"github.com/nrfta/gridview-go"
	"github.com/nrfta/gridview-go/filter"
	"github.com/nrfta/gridview-go/offset"
	"github.com/nrfta/gridview-go/sorting"
)

// Snapshot is everything needed to render the table at one instant.
type Snapshot[T any] struct {
	// Rows is the current page after client-side filtering and sorting.
	Rows []T

	Pagination offset.State
	PageInfo   gridview.PageInfo

	// Loading is true while the latest fetch is in flight. Rows still holds
	// the previous page.
	Loading bool

	// Err is the error of the latest completed fetch, nil on success.
	Err error

	// Search is the submitted term; SearchDraft is the term being typed.
	Search      string
	SearchDraft string

	// Distinct holds the picker values per categorical field, taken from the
	// current page.
	Distinct map[string][]string

	Filter filter.State
	Sort   sorting.State

	Columns []Column
	Showing Showing
}

// Column describes one table header.
type Column struct {
	Name      string
	Label     string
	Kind      gridview.Kind
	Indicator string

	// Numeric columns are right aligned.
	Numeric bool
}

// Showing is the "Showing From to To" caption.
//
// From comes from the server offset while To is bounded by the filtered row
// count, so the two disagree whenever a filter drops rows from the page.
// Filtered reports that case.
type Showing struct {
	From     int
	To       int
	Total    int
	Filtered bool
}

func columns[T any](schema *gridview.Schema[T], s sorting.State) []Column {
	fields := schema.Fields()
	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = Column{
			Name:      f.Name,
			Label:     strmangle.TitleCase(f.Name),
			Kind:      f.Kind,
			Indicator: s.IndicatorFor(f.Name),
			Numeric:   f.Kind == gridview.Numeric,
		}
	}
	return cols
}

func showing(state offset.State, info gridview.PageInfo, fetched, filtered int) Showing {
	return Showing{
		From:     info.Offset + 1,
		To:       min(state.CurrentPage*state.PageSize, filtered*state.CurrentPage),
		Total:    info.TotalCount,
		Filtered: filtered != fetched,
	}
}
