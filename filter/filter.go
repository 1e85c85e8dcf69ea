// Package filter evaluates records of a fetched page against composable
// predicates: categorical multi-select and numeric range.
//
// State is an immutable value. Every mutation returns a new State and leaves
// the receiver untouched, so a State can be shared with the projection
// without copying or locking.
//
// Filters operate only on the page already retrieved; they never widen or
// refill the remote query.
package filter

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nrfta/gridview-go"
)

// Range restricts a numeric field. A nil bound is unrestricted.
type Range struct {
	Min *float64
	Max *float64
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether v lies within the inclusive bounds.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// State is the set of configured field restrictions.
// The zero value restricts nothing.
type State struct {
	categorical map[string]map[string]struct{}
	ranges      map[string]Range
}

// New returns an empty State.
func New() State {
	return State{}
}

// Toggle returns a copy of s with value added to the accepted set of field
// when absent, or removed when present.
func (s State) Toggle(field, value string) State {
	next := s.clone()

	set := maps.Clone(next.categorical[field])
	if set == nil {
		set = make(map[string]struct{})
	}

	if _, ok := set[value]; ok {
		delete(set, value)
	} else {
		set[value] = struct{}{}
	}

	if len(set) == 0 {
		delete(next.categorical, field)
	} else {
		next.categorical[field] = set
	}

	return next
}

// Selected reports whether value is in the accepted set of field.
func (s State) Selected(field, value string) bool {
	_, ok := s.categorical[field][value]
	return ok
}

// Accepted returns the sorted accepted values of field. An empty result means
// the field is unrestricted.
func (s State) Accepted(field string) []string {
	return slices.Sorted(maps.Keys(s.categorical[field]))
}

// WithRange returns a copy of s with the numeric range of field replaced.
// A zero Range clears the restriction.
func (s State) WithRange(field string, r Range) State {
	next := s.clone()
	if r.IsZero() {
		delete(next.ranges, field)
	} else {
		next.ranges[field] = Range{Min: copyBound(r.Min), Max: copyBound(r.Max)}
	}
	return next
}

// WithRangeText is WithRange for raw user input. Text that does not parse as
// a number leaves that bound unrestricted.
func (s State) WithRangeText(field, minText, maxText string) State {
	return s.WithRange(field, Range{Min: ParseBound(minText), Max: ParseBound(maxText)})
}

// RangeOf returns the configured range of field.
func (s State) RangeOf(field string) Range {
	return s.ranges[field]
}

// ClearField returns a copy of s without any restriction on field.
func (s State) ClearField(field string) State {
	next := s.clone()
	delete(next.categorical, field)
	delete(next.ranges, field)
	return next
}

// Clear returns an empty State.
func (s State) Clear() State {
	return State{}
}

// IsActive reports whether any restriction is configured.
func (s State) IsActive() bool {
	return len(s.categorical) > 0 || len(s.ranges) > 0
}

func (s State) clone() State {
	next := State{
		categorical: make(map[string]map[string]struct{}, len(s.categorical)),
		ranges:      make(map[string]Range, len(s.ranges)),
	}
	// Inner sets are shared; Toggle clones the one it changes.
	maps.Copy(next.categorical, s.categorical)
	maps.Copy(next.ranges, s.ranges)
	return next
}

// ParseBound parses a range bound typed by a user. Empty or non-numeric text
// yields nil.
func ParseBound(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}

func copyBound(b *float64) *float64 {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Predicate builds the conjunction of every configured restriction.
// Restrictions on fields unknown to the schema, or on fields of the wrong
// kind, always pass.
func Predicate[T any](schema *gridview.Schema[T], state State) func(T) bool {
	return func(item T) bool {
		for field, accepted := range state.categorical {
			if len(accepted) == 0 {
				continue
			}
			value, ok := schema.String(field, item)
			if !ok {
				continue
			}
			if _, hit := accepted[value]; !hit {
				return false
			}
		}

		for field, r := range state.ranges {
			value, ok := schema.Number(field, item)
			if !ok {
				continue
			}
			if !r.Contains(value) {
				return false
			}
		}

		return true
	}
}

// Apply returns the records that pass state, in their original order.
// The input slice is not modified.
func Apply[T any](schema *gridview.Schema[T], state State, records []T) []T {
	keep := Predicate(schema, state)

	result := make([]T, 0, len(records))
	for _, record := range records {
		if keep(record) {
			result = append(result, record)
		}
	}
	return result
}

// DistinctValues returns, for every categorical field of schema, the distinct
// values found in records in first-seen order. These are the choices offered
// by filter pickers for the current page. An empty value is a choice of its
// own, so records missing the field can be selected.
func DistinctValues[T any](schema *gridview.Schema[T], records []T) map[string][]string {
	fields := schema.FieldsOf(gridview.Categorical)
	result := make(map[string][]string, len(fields))

	for _, field := range fields {
		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, record := range records {
			value, _ := schema.String(field, record)
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
		result[field] = values
	}

	return result
}
