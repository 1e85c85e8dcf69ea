package view

import (
	"github.com/nrfta/gridview-go"
	"github.com/nrfta/gridview-go/filter"
	"github.com/nrfta/gridview-go/sorting"
)

// Project filters records and then sorts the survivors. It never modifies
// records and is idempotent for the same inputs.
func Project[T any](schema *gridview.Schema[T], records []T, f filter.State, s sorting.State) []T {
	return sorting.Sort(schema, s, filter.Apply(schema, f, records))
}
