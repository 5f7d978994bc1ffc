package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/michelderooij/exchangepqt/internal/config"
	"github.com/michelderooij/exchangepqt/internal/fetch"
	"github.com/michelderooij/exchangepqt/internal/sizing"
	"github.com/michelderooij/exchangepqt/internal/table"
)

// Stats counts row outcomes for one run.
type Stats struct {
	Rows     int // data rows read from the dump
	Passed   int // records emitted
	Invalid  int // rows skipped for unusable benchmark data
	Filtered int // valid rows below the requirement
}

type options struct {
	baseURL string
	timeout time.Duration
}

// Option adjusts how Run reaches the remote data source.
type Option func(*options)

// WithBaseURL overrides the results endpoint, e.g. to point at a test server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout overrides the fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Run validates cfg, performs the single dataset fetch and returns a lazy
// Results iterator over the passing records.
//
// A *config.ConfigError is returned before any network activity; a
// *fetch.FetchError when the retrieval itself fails. Parse failures surface
// later, through Results.Err, once the malformed part of the stream is
// reached.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	runID := uuid.NewString()

	builder := fetch.NewBuilder(cfg.Sizing.Spec)
	if o.baseURL != "" {
		builder.BaseURL = o.baseURL
	}
	u := builder.Build(cfg.Query)

	slog.Info("querying benchmark dataset",
		"run_id", runID,
		"spec", cfg.Sizing.Spec,
		"url", u.String(),
	)

	body, err := fetch.NewClient(o.timeout).Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	return &Results{
		runID: runID,
		url:   u.String(),
		body:  body,
		rows:  table.NewScanner(body),
		eng:   sizing.NewEngine(cfg.Sizing),
	}, nil
}

// Results streams passing records from one dataset query. It follows the
// bufio.Scanner idiom: Next advances, Record returns the current record,
// Err reports the first fatal error, Close releases the response body.
type Results struct {
	runID string
	url   string
	body  io.ReadCloser
	rows  *table.Scanner
	eng   *sizing.Engine

	rec      sizing.Record
	err      error
	stats    Stats
	closed   bool
	finished bool
}

// Next advances to the next passing record. It returns false at end of
// stream or on the first fatal error; check Err afterwards.
func (r *Results) Next() bool {
	if r.err != nil || r.closed {
		return false
	}

	for r.rows.Scan() {
		r.stats.Rows++
		rec, verdict := r.eng.Evaluate(r.rows.Row())
		switch verdict {
		case sizing.Pass:
			r.stats.Passed++
			r.rec = rec
			return true
		case sizing.SkipInvalid:
			r.stats.Invalid++
			slog.Debug("skipping row with unusable benchmark data",
				"run_id", r.runID, "row", r.stats.Rows)
		case sizing.SkipFiltered:
			r.stats.Filtered++
		}
	}

	if err := r.rows.Err(); err != nil {
		var perr *table.ParseError
		if errors.As(err, &perr) {
			r.err = perr
		} else {
			// Mid-body transport failures (stalled transfer, reset) belong
			// to the fetch, not the parse.
			r.err = &fetch.FetchError{URL: r.url, Err: err}
		}
		return false
	}

	if !r.finished {
		r.finished = true
		slog.Info("query complete",
			"run_id", r.runID,
			"rows", r.stats.Rows,
			"passed", r.stats.Passed,
			"invalid", r.stats.Invalid,
			"filtered", r.stats.Filtered,
		)
	}
	return false
}

// Record returns the record produced by the last successful Next.
func (r *Results) Record() sizing.Record { return r.rec }

// Err returns the first fatal error, nil on clean end of stream.
func (r *Results) Err() error { return r.err }

// Stats returns the row accounting so far.
func (r *Results) Stats() Stats { return r.stats }

// RunID returns the unique identifier of this run.
func (r *Results) RunID() string { return r.runID }

// Close releases the underlying response body. Safe to call more than once.
func (r *Results) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.body.Close()
}
