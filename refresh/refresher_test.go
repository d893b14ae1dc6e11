package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsaini64/regulations/ai/mock"
	"github.com/dsaini64/regulations/classify"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/storage/badger"
	"github.com/dsaini64/regulations/vecindex"
)

type stubSupplier struct {
	mu    sync.Mutex
	fetch func(ctx context.Context) ([]*core.Regulation, error)
	calls int
}

func (s *stubSupplier) FetchRegulations(ctx context.Context) ([]*core.Regulation, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fetch(ctx)
}

func (s *stubSupplier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testRegulation(part, description, url string) *core.Regulation {
	return &core.Regulation{
		Title:        "Title 21",
		Chapter:      "I",
		Subchapter:   "B",
		Part:         part,
		SectionRange: part + ".1 to " + part + ".99",
		Description:  description,
		URL:          url,
	}
}

func initialSet() []*core.Regulation {
	return []*core.Regulation{
		testRegulation("110", "Current good manufacturing practice requirements", "https://www.ecfr.gov/title-21/part-110"),
		testRegulation("589", "Substances prohibited from use in animal food", "https://www.ecfr.gov/title-21/part-589"),
		testRegulation("1308", "Schedules of controlled substances", "https://www.ecfr.gov/title-21/part-1308"),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRefresher(t *testing.T, supplier Supplier, opts ...Option) (*Refresher, storage.RegulationStore, storage.ChangeLog, storage.MetaStore) {
	t.Helper()

	store, changeLog, metaStore, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	index := vecindex.New(mock.NewMockEmbedder())
	classifier := classify.New()

	opts = append([]Option{WithLogger(quietLogger()), WithSupplyRetry(1, time.Millisecond)}, opts...)
	refresher, err := NewRefresher(supplier, store, changeLog, metaStore, classifier, index, opts...)
	require.NoError(t, err)
	t.Cleanup(refresher.Release)

	return refresher, store, changeLog, metaStore
}

func TestNewRefresher_Validation(t *testing.T) {
	store, changeLog, metaStore, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	supplier := &stubSupplier{}
	classifier := classify.New()
	index := vecindex.New(mock.NewMockEmbedder())

	_, err = NewRefresher(nil, store, changeLog, metaStore, classifier, index)
	assert.ErrorIs(t, err, ErrSupplierRequired)

	_, err = NewRefresher(supplier, nil, changeLog, metaStore, classifier, index)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewRefresher(supplier, store, nil, metaStore, classifier, index)
	assert.ErrorIs(t, err, ErrChangeLogRequired)

	_, err = NewRefresher(supplier, store, changeLog, metaStore, nil, index)
	assert.ErrorIs(t, err, ErrClassifierRequired)

	_, err = NewRefresher(supplier, store, changeLog, metaStore, classifier, nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}

func TestRefresher_Run_InitialPopulation(t *testing.T) {
	ctx := context.Background()
	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		return initialSet(), nil
	}}
	refresher, store, changeLog, metaStore := newTestRefresher(t, supplier)

	report, err := refresher.Run(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, report.JobID)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Added)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 3, report.Changes)
	assert.Equal(t, 3, report.Indexed)
	assert.Empty(t, report.IndexError)

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	byPart := make(map[string]*core.Regulation)
	for _, rec := range stored {
		byPart[rec.Part] = rec
	}
	assert.Equal(t, core.StatusRequiresCompliance, byPart["110"].Status)
	assert.Equal(t, core.StatusProhibited, byPart["589"].Status)
	assert.Equal(t, core.StatusRequiresCompliance, byPart["1308"].Status)
	for _, rec := range stored {
		assert.NotEmpty(t, rec.StatusReason)
	}

	detected, err := changeLog.GetChanges(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, detected, 3)
	for _, c := range detected {
		assert.Equal(t, core.ChangeAdded, c.ChangeType)
		assert.Equal(t, "regulation", c.FieldName)
	}

	info, err := metaStore.GetLastRefresh(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, report.JobID, info.JobID)
	assert.Equal(t, 3, info.Total)
	assert.Equal(t, 3, info.Changes)
}

func TestRefresher_Run_DetectsChanges(t *testing.T) {
	ctx := context.Background()
	second := false
	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		if !second {
			return initialSet(), nil
		}
		return []*core.Regulation{
			// Same description, new URL: reported as a field update.
			testRegulation("110", "Current good manufacturing practice requirements", "https://www.ecfr.gov/title-21/chapter-I/part-110"),
			// Reworded description shifts the lookup key, so this shows
			// up as an addition rather than an update.
			testRegulation("589", "Prohibited cattle materials in animal food", "https://www.ecfr.gov/title-21/part-589"),
			// Part 1308 dropped; deletions are not reported.
			testRegulation("1271", "Human cells and tissues registration and listing", "https://www.ecfr.gov/title-21/part-1271"),
		}, nil
	}}
	refresher, store, changeLog, _ := newTestRefresher(t, supplier)

	first, err := refresher.Run(ctx)
	require.NoError(t, err)

	second = true
	report, err := refresher.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 3, report.Changes)

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	all, err := changeLog.GetChanges(ctx, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, all, first.Changes+report.Changes)

	var urlUpdate *core.ChangeRecord
	for _, c := range all {
		if c.ChangeType == core.ChangeUpdated && c.FieldName == "url" {
			urlUpdate = c
		}
	}
	require.NotNil(t, urlUpdate, "expected a url field update for part 110")
	assert.Equal(t, "https://www.ecfr.gov/title-21/part-110", urlUpdate.OldValue)
	assert.Equal(t, "https://www.ecfr.gov/title-21/chapter-I/part-110", urlUpdate.NewValue)
}

func TestRefresher_Run_EmptySupplyAborts(t *testing.T) {
	ctx := context.Background()
	empty := false
	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		if empty {
			return nil, nil
		}
		return initialSet(), nil
	}}
	refresher, store, _, _ := newTestRefresher(t, supplier)

	_, err := refresher.Run(ctx)
	require.NoError(t, err)

	empty = true
	_, err = refresher.Run(ctx)
	assert.ErrorIs(t, err, ErrNoRegulations)

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3, "store should be untouched after an empty supply")
}

func TestRefresher_Run_SupplierRetries(t *testing.T) {
	ctx := context.Background()
	failures := 2
	supplier := &stubSupplier{}
	supplier.fetch = func(ctx context.Context) ([]*core.Regulation, error) {
		if supplier.callCount() <= failures {
			return nil, errors.New("upstream unavailable")
		}
		return initialSet(), nil
	}
	refresher, _, _, _ := newTestRefresher(t, supplier, WithSupplyRetry(3, time.Millisecond))

	report, err := refresher.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, supplier.callCount())
}

func TestRefresher_Run_SupplierFailure(t *testing.T) {
	ctx := context.Background()
	upstreamErr := errors.New("upstream unavailable")
	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		return nil, upstreamErr
	}}
	refresher, store, _, _ := newTestRefresher(t, supplier, WithSupplyRetry(2, time.Millisecond))

	_, err := refresher.Run(ctx)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, 2, supplier.callCount())

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRefresher_Run_RejectsConcurrentRun(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	var enteredOnce sync.Once
	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		return initialSet(), nil
	}}
	refresher, _, _, _ := newTestRefresher(t, supplier)

	done := make(chan error, 1)
	go func() {
		_, err := refresher.Run(ctx)
		done <- err
	}()

	<-entered
	_, err := refresher.Run(ctx)
	assert.ErrorIs(t, err, ErrRefreshInProgress)

	close(release)
	require.NoError(t, <-done)

	// The lock is released once the first run completes.
	_, err = refresher.Run(ctx)
	require.NoError(t, err)
}

func TestRefresher_Run_IndexFailureDoesNotFailRefresh(t *testing.T) {
	ctx := context.Background()

	store, changeLog, metaStore, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding host down")
	}
	index := vecindex.New(embedder)

	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		return initialSet(), nil
	}}
	refresher, err := NewRefresher(supplier, store, changeLog, metaStore, classify.New(), index,
		WithLogger(quietLogger()), WithSupplyRetry(1, time.Millisecond))
	require.NoError(t, err)
	defer refresher.Release()

	report, err := refresher.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 0, report.Indexed)
	assert.Contains(t, report.IndexError, "embedding host down")

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3, "store swap should survive an index failure")
}

func TestRefresher_Start_RunsInBackground(t *testing.T) {
	ctx := context.Background()
	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		return initialSet(), nil
	}}
	refresher, store, _, metaStore := newTestRefresher(t, supplier)

	jobID, err := refresher.Start(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	deadline := time.Now().Add(5 * time.Second)
	for {
		info, err := metaStore.GetLastRefresh(ctx)
		require.NoError(t, err)
		if info != nil {
			assert.Equal(t, jobID, info.JobID)
			break
		}
		require.True(t, time.Now().Before(deadline), "background refresh did not complete")
		time.Sleep(10 * time.Millisecond)
	}

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestRefresher_Run_PresetStatusSkipsClassification(t *testing.T) {
	ctx := context.Background()

	store, changeLog, metaStore, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	llm := mock.NewMockStatusClassifier()
	classifier := classify.New(classify.WithLLM(llm))

	supplier := &stubSupplier{fetch: func(ctx context.Context) ([]*core.Regulation, error) {
		preset := testRegulation("1240", "Control of communicable diseases", "https://www.ecfr.gov/title-21/part-1240")
		preset.Status = core.StatusRequiresCompliance
		preset.StatusReason = "Imported from curated dataset"
		return []*core.Regulation{preset}, nil
	}}
	refresher, err := NewRefresher(supplier, store, changeLog, metaStore, classifier, vecindex.New(mock.NewMockEmbedder()),
		WithLogger(quietLogger()), WithSupplyRetry(1, time.Millisecond))
	require.NoError(t, err)
	defer refresher.Release()

	_, err = refresher.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, llm.CallCount(), "pre-classified records should not be re-analyzed")

	stored, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, core.StatusRequiresCompliance, stored[0].Status)
	assert.Equal(t, "Imported from curated dataset", stored[0].StatusReason)
}
