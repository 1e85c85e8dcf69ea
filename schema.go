package gridview

import (
	"cmp"
	"fmt"
)

// Kind classifies a schema field by how it is filtered and compared.
type Kind int

const (
	// Numeric fields compare as float64 and accept range filters.
	Numeric Kind = iota
	// Text fields compare as strings and are not filterable.
	Text
	// Categorical fields compare as strings and accept multi-select filters.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one column of a record type.
type Field struct {
	Name string
	Kind Kind
}

// fieldSpec holds the extractor for a single registered field.
type fieldSpec[T any] struct {
	name     string
	kind     Kind
	number   func(T) float64
	text     func(T) string
	position int
}

// Schema is the closed set of fields a record type exposes to the viewer.
// It is the single source of truth for filtering, sorting and column display,
// so every component agrees on field names and value types.
//
// A Schema is built once and is safe for concurrent reads afterwards.
//
// Example:
//
//	var productSchema = gridview.NewSchema[Product]().
//	    Numeric("id", func(p Product) float64 { return float64(p.ID) }).
//	    Text("title", func(p Product) string { return p.Title }).
//	    Categorical("brand", func(p Product) string { return p.Brand }).
//	    Numeric("price", func(p Product) float64 { return p.Price })
type Schema[T any] struct {
	fields  map[string]*fieldSpec[T]
	ordered []*fieldSpec[T]
}

// NewSchema creates an empty Schema.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		fields:  make(map[string]*fieldSpec[T]),
		ordered: make([]*fieldSpec[T], 0),
	}
}

// Numeric registers a numeric field.
func (s *Schema[T]) Numeric(name string, extractor func(T) float64) *Schema[T] {
	return s.add(&fieldSpec[T]{name: name, kind: Numeric, number: extractor})
}

// Text registers a free-text field.
func (s *Schema[T]) Text(name string, extractor func(T) string) *Schema[T] {
	return s.add(&fieldSpec[T]{name: name, kind: Text, text: extractor})
}

// Categorical registers a field whose values form a small closed set.
func (s *Schema[T]) Categorical(name string, extractor func(T) string) *Schema[T] {
	return s.add(&fieldSpec[T]{name: name, kind: Categorical, text: extractor})
}

// add registers spec, replacing an earlier field of the same name in place.
func (s *Schema[T]) add(spec *fieldSpec[T]) *Schema[T] {
	if existing, ok := s.fields[spec.name]; ok {
		spec.position = existing.position
		s.ordered[existing.position] = spec
		s.fields[spec.name] = spec
		return s
	}

	spec.position = len(s.ordered)
	s.fields[spec.name] = spec
	s.ordered = append(s.ordered, spec)
	return s
}

// Fields returns all fields in declaration order.
func (s *Schema[T]) Fields() []Field {
	result := make([]Field, len(s.ordered))
	for i, spec := range s.ordered {
		result[i] = Field{Name: spec.name, Kind: spec.kind}
	}
	return result
}

// Lookup returns the field registered under name.
func (s *Schema[T]) Lookup(name string) (Field, bool) {
	spec, ok := s.fields[name]
	if !ok {
		return Field{}, false
	}
	return Field{Name: spec.name, Kind: spec.kind}, true
}

// FieldsOf returns the names of all fields of the given kind in declaration order.
func (s *Schema[T]) FieldsOf(kind Kind) []string {
	var names []string
	for _, spec := range s.ordered {
		if spec.kind == kind {
			names = append(names, spec.name)
		}
	}
	return names
}

// Number extracts a numeric field value. ok is false when name is not a
// numeric field.
func (s *Schema[T]) Number(name string, item T) (float64, bool) {
	spec, ok := s.fields[name]
	if !ok || spec.kind != Numeric {
		return 0, false
	}
	return spec.number(item), true
}

// String extracts a text or categorical field value. ok is false when name is
// not a string-valued field.
func (s *Schema[T]) String(name string, item T) (string, bool) {
	spec, ok := s.fields[name]
	if !ok || spec.kind == Numeric {
		return "", false
	}
	return spec.text(item), true
}

// Compare orders a and b by the named field using the native ordering of its
// value type. ok is false when the field is unknown.
func (s *Schema[T]) Compare(name string, a, b T) (int, bool) {
	spec, ok := s.fields[name]
	if !ok {
		return 0, false
	}
	if spec.kind == Numeric {
		return cmp.Compare(spec.number(a), spec.number(b)), true
	}
	return cmp.Compare(spec.text(a), spec.text(b)), true
}
