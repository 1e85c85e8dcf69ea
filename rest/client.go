// Package rest fetches pages from an HTTP/JSON collection endpoint.
//
// The endpoint accepts limit and skip query parameters, plus q on its search
// path, and answers with a JSON object holding the records array and the
// total count:
//
//	GET /products?limit=20&skip=40
//	GET /products/search?q=phone&limit=20&skip=0
//
//	{"products": [...], "total": 194, "skip": 40, "limit": 20}
//
// Example usage:
//
//	client, err := rest.New[catalog.Product](rest.DefaultConfig(), rest.WithLogger(logger))
//	page, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 20})
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nrfta/gridview-go"
)

const sourceName = "rest"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client implements gridview.PageFetcher[T] over HTTP.
//
// Type parameter T is the record type; it is decoded with encoding/json.
type Client[T any] struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// WithHTTPClient replaces the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a Client after validating cfg.
func New[T any](cfg Config, opts ...Option) (*Client[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return &Client[T]{
		cfg:        cfg,
		httpClient: o.httpClient,
		logger:     o.logger.Named("rest").Sugar(),
	}, nil
}

// Fetch implements gridview.PageFetcher.
func (c *Client[T]) Fetch(ctx context.Context, params gridview.FetchParams) (*gridview.Page[T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	endpoint := c.buildURL(params)
	log := c.logger.With("request_id", requestID, "url", endpoint)

	startTime := time.Now()
	body, err := c.get(ctx, endpoint)
	elapsed := time.Since(startTime)
	if err != nil {
		log.Warnw("fetch failed", "duration", elapsed, "error", err)
		return nil, err
	}

	records, total, err := decodePage[T](body, c.cfg.RecordsKey)
	if err != nil {
		var malformed *gridview.MalformedResponseError
		if !errors.As(err, &malformed) {
			err = &gridview.TransportError{Op: "decode", URL: endpoint, Err: err}
		}
		log.Warnw("fetch returned an unusable body", "duration", elapsed, "error", err)
		return nil, err
	}

	log.Debugw("fetched page", "duration", elapsed, "records", len(records), "total", total)

	return &gridview.Page[T]{
		Records: records,
		Total:   total,
		Metadata: gridview.Metadata{
			Source:    sourceName,
			RequestID: requestID,
			QueryTime: elapsed,
		},
	}, nil
}

// buildURL selects the listing or search path and appends limit/skip.
func (c *Client[T]) buildURL(params gridview.FetchParams) string {
	query := url.Values{}
	path := c.cfg.ListPath

	if search := strings.TrimSpace(params.Search); search != "" {
		path = c.cfg.SearchPath
		query.Set("q", search)
	}

	query.Set("limit", strconv.Itoa(params.PageSize))
	query.Set("skip", strconv.Itoa(params.Offset()))

	return strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + query.Encode()
}

func (c *Client[T]) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &gridview.TransportError{Op: "request", URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &gridview.TransportError{Op: "request", URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &gridview.TransportError{Op: "status", URL: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &gridview.TransportError{Op: "read", URL: endpoint, Err: err}
	}
	return body, nil
}

// decodePage extracts the records array under recordsKey and the total count.
// A body that is not a JSON object is a plain decode error; a JSON object
// missing either field is a *gridview.MalformedResponseError.
func decodePage[T any](body []byte, recordsKey string) ([]T, int, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, errors.Wrap(err, "decode response body")
	}
	if envelope == nil {
		return nil, 0, &gridview.MalformedResponseError{Reason: "response body is null"}
	}

	rawTotal, ok := envelope["total"]
	if !ok || isNull(rawTotal) {
		return nil, 0, &gridview.MalformedResponseError{Reason: "missing total"}
	}

	var total int
	if err := json.Unmarshal(rawTotal, &total); err != nil {
		return nil, 0, &gridview.MalformedResponseError{Reason: "total is not an integer", Err: err}
	}
	if total < 0 {
		return nil, 0, &gridview.MalformedResponseError{Reason: "total is negative"}
	}

	rawRecords, ok := envelope[recordsKey]
	if !ok || isNull(rawRecords) {
		return nil, 0, &gridview.MalformedResponseError{Reason: "missing " + recordsKey}
	}

	var records []T
	if err := json.Unmarshal(rawRecords, &records); err != nil {
		return nil, 0, &gridview.MalformedResponseError{Reason: recordsKey + " is not a list of records", Err: err}
	}
	if records == nil {
		records = []T{}
	}

	return records, total, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
