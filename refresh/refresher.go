// Copyright 2025 dsaini64
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package refresh

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/dsaini64/regulations/changes"
	"github.com/dsaini64/regulations/classify"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/vecindex"
)

const (
	supplyMaxAttempts = 3
	supplyBaseDelay   = 2 * time.Second

	progressReportInterval = 25
)

// Supplier produces the full regulation set for a refresh cycle.
type Supplier interface {
	// FetchRegulations returns every regulation in the current source
	// snapshot. The refresher replaces the stored set with the result.
	FetchRegulations(ctx context.Context) ([]*core.Regulation, error)
}

// Report summarizes a completed refresh run.
type Report struct {
	JobID   string        `json:"job_id"`
	Total   int           `json:"total"`
	Added   int           `json:"added"`
	Updated int           `json:"updated"`
	Changes int           `json:"changes"`
	Indexed int           `json:"indexed"`
	Elapsed time.Duration `json:"elapsed"`

	// IndexError carries an index rebuild failure. The refresh itself
	// still succeeds; search degrades to keyword-only until the next
	// successful rebuild.
	IndexError string `json:"index_error,omitempty"`
}

// Refresher runs the full ingestion cycle: fetch the current regulation
// set, classify it, swap it into the store, record detected changes, and
// rebuild the vector index. At most one refresh runs at a time.
type Refresher struct {
	supplier   Supplier
	store      storage.RegulationStore
	changeLog  storage.ChangeLog
	metaStore  storage.MetaStore
	classifier *classify.Classifier
	index      *vecindex.Index
	detector   *changes.Detector

	pool           *ants.Pool
	progressWriter io.Writer
	logger         *slog.Logger

	supplyMaxAttempts int
	supplyBaseDelay   time.Duration

	mu sync.Mutex
}

// Option configures a Refresher.
type Option func(*Refresher) error

// WithPoolSize sets the worker pool size for concurrent classification.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Refresher) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Refresher) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithProgressWriter enables progress reporting during classification,
// typically to os.Stderr. Default is no progress output.
func WithProgressWriter(w io.Writer) Option {
	return func(r *Refresher) error {
		r.progressWriter = w
		return nil
	}
}

// WithSupplyRetry tunes retry behavior for supplier fetches.
// Default is 3 attempts with a 2 second base delay.
func WithSupplyRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Refresher) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.supplyMaxAttempts = maxAttempts
		r.supplyBaseDelay = baseDelay
		return nil
	}
}

// NewRefresher creates a refresher over the given collaborators.
func NewRefresher(
	supplier Supplier,
	store storage.RegulationStore,
	changeLog storage.ChangeLog,
	metaStore storage.MetaStore,
	classifier *classify.Classifier,
	index *vecindex.Index,
	opts ...Option,
) (*Refresher, error) {
	if supplier == nil {
		return nil, ErrSupplierRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if changeLog == nil {
		return nil, ErrChangeLogRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Refresher{
		supplier:          supplier,
		store:             store,
		changeLog:         changeLog,
		metaStore:         metaStore,
		classifier:        classifier,
		index:             index,
		detector:          changes.NewDetector(),
		pool:              pool,
		logger:            slog.Default(),
		supplyMaxAttempts: supplyMaxAttempts,
		supplyBaseDelay:   supplyBaseDelay,
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Release frees the classification worker pool.
func (r *Refresher) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Run executes one refresh cycle synchronously.
// Returns ErrRefreshInProgress if another refresh is already running.
func (r *Refresher) Run(ctx context.Context) (*Report, error) {
	if !r.mu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer r.mu.Unlock()

	return r.run(ctx, newJobID())
}

// Start launches a refresh cycle in the background and returns its job ID
// immediately. Returns ErrRefreshInProgress if another refresh is already
// running. Errors from the background run are logged.
func (r *Refresher) Start(ctx context.Context) (string, error) {
	if !r.mu.TryLock() {
		return "", ErrRefreshInProgress
	}

	jobID := newJobID()
	go func() {
		defer r.mu.Unlock()
		if _, err := r.run(ctx, jobID); err != nil {
			r.logger.Error("background refresh failed", "job_id", jobID, "error", err)
		}
	}()

	return jobID, nil
}

// run performs the refresh. Caller must hold r.mu.
func (r *Refresher) run(ctx context.Context, jobID string) (*Report, error) {
	logger := r.logger.With("job_id", jobID)
	start := time.Now()
	logger.Info("refresh started")

	var supplied []*core.Regulation
	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		supplied, fetchErr = r.supplier.FetchRegulations(ctx)
		return fetchErr
	}, r.supplyMaxAttempts, r.supplyBaseDelay)
	if err != nil {
		return nil, err
	}
	if len(supplied) == 0 {
		return nil, ErrNoRegulations
	}
	logger.Info("regulations fetched", "count", len(supplied))

	for _, rec := range supplied {
		rec.Normalize()
	}

	if err := r.classifyAll(ctx, supplied); err != nil {
		return nil, err
	}

	previous, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := r.detector.Snapshot(previous)

	stored, err := r.store.ReplaceAll(ctx, supplied...)
	if err != nil {
		return nil, err
	}

	detected := r.detector.Detect(snapshot, stored)
	if len(detected) > 0 {
		if _, err := r.changeLog.AppendChanges(ctx, detected...); err != nil {
			return nil, err
		}
	}

	report := &Report{
		JobID:   jobID,
		Total:   len(stored),
		Changes: len(detected),
	}
	for _, c := range detected {
		switch c.ChangeType {
		case core.ChangeAdded:
			report.Added++
		case core.ChangeUpdated:
			report.Updated++
		}
	}

	if r.metaStore != nil {
		info := &core.RefreshInfo{
			JobID:   jobID,
			Total:   report.Total,
			Changes: report.Changes,
		}
		if err := r.metaStore.SetLastRefresh(ctx, info); err != nil {
			logger.Warn("failed to record refresh completion", "error", err)
		}
	}

	// The store is already consistent at this point. An index rebuild
	// failure degrades search to keyword-only rather than failing the
	// refresh.
	indexed, indexErr := r.index.Build(ctx, stored)
	if indexErr != nil {
		logger.Error("index rebuild failed", "error", indexErr)
		report.IndexError = indexErr.Error()
	}
	report.Indexed = indexed

	report.Elapsed = time.Since(start)
	logger.Info("refresh completed",
		"total", report.Total,
		"added", report.Added,
		"updated", report.Updated,
		"changes", report.Changes,
		"indexed", report.Indexed,
		"elapsed", report.Elapsed)

	return report, nil
}

// classifyAll assigns a status to every record still marked unknown,
// fanning the work out over the worker pool.
func (r *Refresher) classifyAll(ctx context.Context, records []*core.Regulation) error {
	var tracker *ProgressTracker
	if r.progressWriter != nil {
		tracker = NewProgressTracker(r.progressWriter, len(records), progressReportInterval)
		tracker.Start()
	}

	var wg sync.WaitGroup
	for _, rec := range records {
		if rec.Status != core.StatusUnknown {
			if tracker != nil {
				tracker.Increment(1)
			}
			continue
		}

		rec := rec
		wg.Add(1)
		task := func() {
			defer wg.Done()
			rec.Status, rec.StatusReason = r.classifier.Classify(ctx, rec.Description, rec.URL, "")
			if tracker != nil {
				tracker.Increment(1)
			}
		}
		if err := r.pool.Submit(task); err != nil {
			// Pool rejected the task (released or overloaded); classify
			// on the calling goroutine instead.
			r.logger.Debug("pool submit failed, classifying inline", "error", err)
			task()
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func newJobID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
