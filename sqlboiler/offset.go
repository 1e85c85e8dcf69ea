package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/gridview-go"
)

// OrderBy represents a fixed sort directive for the underlying table.
type OrderBy struct {
	Column string
	Desc   bool
}

// OffsetToQueryMods converts FetchParams into SQLBoiler query mods.
//
// The conversion follows these rules:
//   - Offset() → qm.Offset(n), skipped when 0
//   - PageSize → qm.Limit(n), skipped when 0
//   - orderBy → qm.OrderBy("col1 DESC, col2"), skipped when empty
func OffsetToQueryMods(params gridview.FetchParams, orderBy []OrderBy) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if offset := params.Offset(); offset > 0 {
		mods = append(mods, qm.Offset(offset))
	}

	if params.PageSize > 0 {
		mods = append(mods, qm.Limit(params.PageSize))
	}

	if len(orderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(orderBy)))
	}

	return mods
}

// SearchToQueryMods builds a case-insensitive substring match of search over
// columns, OR-ed together. It returns no mods for a blank term or no columns.
//
// Example:
//
//	SearchToQueryMods("phone", []string{"title", "brand"})
//	→ WHERE ("title" ILIKE '%phone%' OR "brand" ILIKE '%phone%')
func SearchToQueryMods(search string, columns []string) []qm.QueryMod {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return []qm.QueryMod{}
	}

	pattern := "%" + escapeLike(search) + "%"

	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		clauses[i] = quoteIdent(column) + " ILIKE ?"
		args[i] = pattern
	}

	return []qm.QueryMod{
		qm.Where("("+strings.Join(clauses, " OR ")+")", args...),
	}
}

// buildOrderByClause constructs an ORDER BY clause from OrderBy directives.
// Assumes len(orderBy) > 0 (caller must verify).
//
// Example:
//
//	[]OrderBy{
//	    {Column: "price", Desc: true},
//	    {Column: "id", Desc: false},
//	}
//	→ "price DESC, id"
func buildOrderByClause(orderBy []OrderBy) string {
	parts := make([]string, len(orderBy))
	for i, o := range orderBy {
		if o.Desc {
			parts[i] = o.Column + " DESC"
		} else {
			parts[i] = o.Column
		}
	}
	return strings.Join(parts, ", ")
}

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// quoteIdent double-quotes a column name, keeping a table qualifier apart.
func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
