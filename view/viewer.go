// Package view composes a page fetcher, the pagination coordinator and the
// client-side filter and sort engines into a single table viewer.
//
// Events mutate state synchronously and never block on I/O. Fetches run in
// the background; only the result of the most recently issued fetch is ever
// applied, so a slow response cannot overwrite a newer one.
//
// Example usage:
//
//	client, _ := rest.New[catalog.Product](rest.DefaultConfig())
//	v, err := view.New[catalog.Product](client, catalog.Schema, view.WithLogger(logger))
//	v.RequestFetch(ctx)
//	v.ToggleCategoricalValue(catalog.FieldBrand, "Acme")
//	snap := v.Snapshot()
package view

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nrfta/gridview-go"
	"github.com/nrfta/gridview-go/filter"
	"github.com/nrfta/gridview-go/offset"
	"github.com/nrfta/gridview-go/sorting"
)

// Viewer holds the table state for one record type. It is safe for
// concurrent use.
type Viewer[T any] struct {
	fetcher    gridview.PageFetcher[T]
	schema     *gridview.Schema[T]
	cfg        Config
	pageConfig *gridview.PageConfig
	logger     *zap.SugaredLogger

	mu       sync.Mutex
	coord    *offset.Coordinator
	filter   filter.State
	sort     sorting.State
	draft    string
	search   string
	records  []T
	distinct map[string][]string
	loading  bool
	err      error

	// token identifies the latest issued fetch.
	token uint64

	// inflight counts running fetches; settled is signalled when it drops
	// to zero. Both are guarded by mu.
	inflight int
	settled  *sync.Cond
}

// Option configures a Viewer.
type Option func(*options)

type options struct {
	cfg    Config
	logger *zap.Logger
}

// WithConfig replaces DefaultConfig().
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a Viewer on page 1 with no data. Call RequestFetch to load the
// first page.
func New[T any](fetcher gridview.PageFetcher[T], schema *gridview.Schema[T], opts ...Option) (*Viewer[T], error) {
	o := &options{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	pageConfig := o.cfg.pageConfig()
	pageSize := o.cfg.DefaultPageSize
	if pageConfig != nil {
		pageSize = pageConfig.EffectiveSize(pageSize)
	}

	v := &Viewer[T]{
		fetcher:    fetcher,
		schema:     schema,
		cfg:        o.cfg,
		pageConfig: pageConfig,
		logger:     o.logger.Named("view").Sugar(),
		coord:      offset.New(pageSize),
		filter:     filter.New(),
		records:    []T{},
		distinct:   map[string][]string{},
	}
	v.settled = sync.NewCond(&v.mu)

	return v, nil
}

// RequestFetch fetches the current page.
func (v *Viewer[T]) RequestFetch(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.startFetchLocked(ctx)
}

// SetPageSize changes the page size and fetches page 1. Sizes below 1, or
// above Config.MaxPageSize when one is set, are rejected and leave the state
// unchanged.
func (v *Viewer[T]) SetPageSize(ctx context.Context, n int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pageConfig != nil {
		if err := v.pageConfig.Validate(n); err != nil {
			return err
		}
	}

	refetch, err := v.coord.SetPageSize(n)
	if err != nil {
		return err
	}
	if refetch {
		v.startFetchLocked(ctx)
	}
	return nil
}

// NextPage moves forward one page. It does nothing on the last page.
func (v *Viewer[T]) NextPage(ctx context.Context) {
	v.navigate(ctx, (*offset.Coordinator).NextPage)
}

// PrevPage moves back one page. It does nothing on the first page.
func (v *Viewer[T]) PrevPage(ctx context.Context) {
	v.navigate(ctx, (*offset.Coordinator).PrevPage)
}

// GoToPage jumps to page n, clamped to the known page range.
func (v *Viewer[T]) GoToPage(ctx context.Context, n int) {
	v.navigate(ctx, func(c *offset.Coordinator) bool {
		return c.GoToPage(n)
	})
}

func (v *Viewer[T]) navigate(ctx context.Context, move func(*offset.Coordinator) bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if move(v.coord) {
		v.startFetchLocked(ctx)
	}
}

// SetSearchTerm stores the search term being typed. It does not fetch.
func (v *Viewer[T]) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.draft = term
}

// SubmitSearch submits the typed term and fetches. A changed term starts
// again from page 1.
func (v *Viewer[T]) SubmitSearch(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.draft != v.search {
		v.search = v.draft
		v.coord.ResetPage()
	}
	v.startFetchLocked(ctx)
}

// ToggleCategoricalValue adds value to the accepted set of field, or removes
// it when already present.
func (v *Viewer[T]) ToggleCategoricalValue(field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = v.filter.Toggle(field, value)
}

// SetNumericRange sets the inclusive bounds of field. A nil bound is unset.
func (v *Viewer[T]) SetNumericRange(field string, minValue, maxValue *float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = v.filter.WithRange(field, filter.Range{Min: minValue, Max: maxValue})
}

// SetNumericRangeText sets the bounds of field from user input. Empty or
// non-numeric text leaves that bound unset.
func (v *Viewer[T]) SetNumericRangeText(field, minText, maxText string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = v.filter.WithRangeText(field, minText, maxText)
}

// ClickSortColumn advances the sort cycle for field.
func (v *Viewer[T]) ClickSortColumn(field string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sort = v.sort.Click(field)
}

// ClearFilters drops every categorical and range filter.
func (v *Viewer[T]) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = v.filter.Clear()
}

// Snapshot returns the current render model.
func (v *Viewer[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := Project(v.schema, v.records, v.filter, v.sort)
	state := v.coord.State()
	info := v.coord.PageInfo()

	distinct := make(map[string][]string, len(v.distinct))
	for field, values := range v.distinct {
		distinct[field] = append([]string(nil), values...)
	}

	return Snapshot[T]{
		Rows:        rows,
		Pagination:  state,
		PageInfo:    info,
		Loading:     v.loading,
		Err:         v.err,
		Search:      v.search,
		SearchDraft: v.draft,
		Distinct:    distinct,
		Filter:      v.filter,
		Sort:        v.sort,
		Columns:     columns(v.schema, v.sort),
		Showing:     showing(state, info, len(v.records), len(rows)),
	}
}

// Wait blocks until every fetch started so far, and any refetch it
// triggers, has finished.
func (v *Viewer[T]) Wait() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for v.inflight > 0 {
		v.settled.Wait()
	}
}

// startFetchLocked issues a fetch for the current coordinates. v.mu must be
// held.
func (v *Viewer[T]) startFetchLocked(ctx context.Context) {
	v.token++
	v.loading = true

	token := v.token
	params := v.coord.Params(v.search)

	v.inflight++
	go v.fetch(ctx, token, params)
}

func (v *Viewer[T]) fetch(parent context.Context, token uint64, params gridview.FetchParams) {
	log := v.logger.With("fetch_id", uuid.NewString(), "token", token, "page", params.PageIndex, "size", params.PageSize)

	ctx, cancel := context.WithTimeout(parent, v.cfg.FetchTimeout)
	defer cancel()

	page, err := v.fetcher.Fetch(ctx, params)
	if err == nil && page == nil {
		err = &gridview.MalformedResponseError{Reason: "fetcher returned no page"}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.fetchDoneLocked()

	if token != v.token {
		log.Debugw("discarding stale fetch result", "latest", v.token)
		return
	}

	v.loading = false

	if err != nil {
		log.Warnw("fetch failed", "error", err)
		v.err = err
		return
	}

	v.err = nil
	v.records = page.Records
	if v.records == nil {
		v.records = []T{}
	}
	v.distinct = filter.DistinctValues(v.schema, v.records)

	log.Debugw("fetch applied", "records", len(v.records), "total", page.Total, "request_id", page.Metadata.RequestID)

	if v.coord.OnFetchResult(page.Total) {
		log.Debugw("current page out of range, refetching", "clamped_page", v.coord.State().CurrentPage)
		v.startFetchLocked(parent)
	}
}

// fetchDoneLocked retires one fetch. A refetch started by the same result is
// already counted, so Wait keeps blocking for it. v.mu must be held.
func (v *Viewer[T]) fetchDoneLocked() {
	v.inflight--
	if v.inflight == 0 {
		v.settled.Broadcast()
	}
}
