package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

// postgresDialect matches the dialect SQLBoiler generates for psql models.
var postgresDialect = drivers.Dialect{
	LQ: '"',
	RQ: '"',

	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// NewTable builds query and count functions over a postgres table for row
// types without generated models. Rows bind to T through `boil` struct tags.
func NewTable[T any](exec boil.ContextExecutor, table string, columns []string) (QueryFunc[T], CountFunc) {
	query := func(ctx context.Context, mods ...qm.QueryMod) ([]T, error) {
		q := newQuery(table, columns, mods)

		var rows []T
		if err := q.Bind(ctx, exec, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	count := func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
		q := newQuery(table, nil, mods)
		queries.SetSelect(q, nil)
		queries.SetCount(q)

		var n int64
		err := q.QueryRowContext(ctx, exec).Scan(&n)
		return n, err
	}

	return query, count
}

func newQuery(table string, columns []string, mods []qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &postgresDialect)
	queries.SetFrom(q, quoteIdent(table))

	if len(columns) > 0 {
		selected := make([]string, len(columns))
		for i, column := range columns {
			selected[i] = quoteIdent(column)
		}
		queries.SetSelect(q, selected)
	}

	qm.Apply(q, mods...)
	return q
}
