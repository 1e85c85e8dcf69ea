// Package sqlboiler provides a gridview.PageFetcher backed by a SQL table
// through SQLBoiler query mods.
//
// The fetcher is ORM-agnostic about how queries run: it builds query mods
// from gridview.FetchParams and hands them to injected query and count
// functions. Those can be SQLBoiler generated model queries or the raw table
// queries built by NewTable.
//
// Example usage with generated models:
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Product, error) {
//	        return models.Products(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Products(mods...).Count(ctx, db)
//	    },
//	    sqlboiler.WithSearchColumns("title", "brand", "category"),
//	)
//
// Example usage with a plain table:
//
//	query, count := sqlboiler.NewTable[catalog.Product](db, catalog.Table, catalog.Columns)
//	fetcher := sqlboiler.NewFetcher(query, count, sqlboiler.WithSearchColumns("title"))
package sqlboiler

import (
	"context"
	"time"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nrfta/gridview-go"
)

const sourceName = "sql"

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the row type (e.g., catalog.Product).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Fetcher implements gridview.PageFetcher[T] for SQLBoiler queries.
type Fetcher[T any] struct {
	queryFunc     QueryFunc[T]
	countFunc     CountFunc
	searchColumns []string
	orderBy       []OrderBy
	logger        *zap.SugaredLogger
}

// Option configures a Fetcher.
type Option func(*config)

type config struct {
	searchColumns []string
	orderBy       []OrderBy
	logger        *zap.Logger
}

// WithSearchColumns sets the columns matched by a search term.
// Default: none, so searches return every row.
func WithSearchColumns(columns ...string) Option {
	return func(c *config) {
		c.searchColumns = columns
	}
}

// WithOrderBy sets the fixed row order that keeps offset pages stable.
// Default: id ascending.
func WithOrderBy(orderBy ...OrderBy) Option {
	return func(c *config) {
		c.orderBy = orderBy
	}
}

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// NewFetcher creates a new SQLBoiler fetcher.
func NewFetcher[T any](queryFunc QueryFunc[T], countFunc CountFunc, opts ...Option) *Fetcher[T] {
	cfg := &config{
		orderBy: []OrderBy{{Column: "id"}},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Fetcher[T]{
		queryFunc:     queryFunc,
		countFunc:     countFunc,
		searchColumns: cfg.searchColumns,
		orderBy:       cfg.orderBy,
		logger:        cfg.logger.Named("sqlboiler").Sugar(),
	}
}

// Fetch implements gridview.PageFetcher. The search condition applies to both
// the page query and the count, so Total always matches the searched set.
func (f *Fetcher[T]) Fetch(ctx context.Context, params gridview.FetchParams) (*gridview.Page[T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	log := f.logger.With("request_id", requestID, "page", params.PageIndex, "size", params.PageSize, "search", params.Search)

	where := SearchToQueryMods(params.Search, f.searchColumns)
	mods := append(append([]qm.QueryMod{}, where...), OffsetToQueryMods(params, f.orderBy)...)

	startTime := time.Now()

	items, err := f.queryFunc(ctx, mods...)
	if err != nil {
		log.Warnw("page query failed", "error", err)
		return nil, &gridview.TransportError{Op: "query", Err: err}
	}

	count, err := f.countFunc(ctx, where...)
	if err != nil {
		log.Warnw("count query failed", "error", err)
		return nil, &gridview.TransportError{Op: "count", Err: err}
	}

	elapsed := time.Since(startTime)
	log.Debugw("fetched page", "duration", elapsed, "records", len(items), "total", count)

	if items == nil {
		items = []T{}
	}

	return &gridview.Page[T]{
		Records: items,
		Total:   int(count),
		Metadata: gridview.Metadata{
			Source:    sourceName,
			RequestID: requestID,
			QueryTime: elapsed,
		},
	}, nil
}
