// Package sorting orders a fetched page by a single column with a tri-state
// direction cycle: ascending, descending, then back to the original order.
package sorting

import (
	"fmt"
	"slices"

	"github.com/nrfta/gridview-go"
)

// Direction is the sort direction of a column.
type Direction int

const (
	// None keeps records in their fetched order.
	None Direction = iota
	// Ascending places smaller values first.
	Ascending
	// Descending places larger values first.
	Descending
)

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Indicators shown in column headers.
const (
	IndicatorNeutral    = "↕"
	IndicatorAscending  = "↑"
	IndicatorDescending = "↓"
)

// Indicator returns the header glyph for d.
func (d Direction) Indicator() string {
	switch d {
	case Ascending:
		return IndicatorAscending
	case Descending:
		return IndicatorDescending
	default:
		return IndicatorNeutral
	}
}

// State is the current sort configuration. The zero value is unsorted.
//
// Field is kept after the cycle returns to None so the column can still show
// a neutral indicator; for ordering purposes None with a field is the same as
// no field at all.
type State struct {
	Field     string
	Direction Direction
}

// Click advances the cycle for a column selection:
//   - a different column starts at Ascending
//   - Ascending becomes Descending
//   - Descending becomes None
//   - None on the same column starts again at Ascending
func (s State) Click(field string) State {
	if s.Field != field {
		return State{Field: field, Direction: Ascending}
	}

	switch s.Direction {
	case Ascending:
		return State{Field: field, Direction: Descending}
	case Descending:
		return State{Field: field, Direction: None}
	default:
		return State{Field: field, Direction: Ascending}
	}
}

// Active reports whether s reorders records.
func (s State) Active() bool {
	return s.Field != "" && s.Direction != None
}

// DirectionFor returns the direction shown for field.
func (s State) DirectionFor(field string) Direction {
	if s.Field != field {
		return None
	}
	return s.Direction
}

// IndicatorFor returns the header glyph for field.
func (s State) IndicatorFor(field string) string {
	return s.DirectionFor(field).Indicator()
}

// Sort returns a copy of records ordered by state. Ties keep their fetched
// relative order. An inactive state, or a field unknown to the schema,
// returns the records in their original order.
func Sort[T any](schema *gridview.Schema[T], state State, records []T) []T {
	result := slices.Clone(records)
	if result == nil {
		result = []T{}
	}

	if !state.Active() {
		return result
	}

	if _, ok := schema.Lookup(state.Field); !ok {
		return result
	}

	desc := state.Direction == Descending
	slices.SortStableFunc(result, func(a, b T) int {
		c, _ := schema.Compare(state.Field, a, b)
		if desc {
			return -c
		}
		return c
	})

	return result
}
