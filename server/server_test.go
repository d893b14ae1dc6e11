package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsaini64/regulations/ai/mock"
	"github.com/dsaini64/regulations/classify"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/refresh"
	"github.com/dsaini64/regulations/search"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/storage/badger"
	"github.com/dsaini64/regulations/vecindex"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixture struct {
	server    *Server
	router    *gin.Engine
	store     storage.RegulationStore
	changeLog storage.ChangeLog
	metaStore storage.MetaStore
	index     *vecindex.Index
	stored    []*core.Regulation
}

func seedRecords() []*core.Regulation {
	return []*core.Regulation{
		{Title: "Title 21", Chapter: "I", Subchapter: "B", Part: "101", SectionRange: "101.1 to 101.108", Description: "Food labeling", URL: "https://www.ecfr.gov/part-101", Status: core.StatusRequiresCompliance, StatusReason: "r"},
		{Title: "Title 21", Chapter: "I", Subchapter: "E", Part: "589", SectionRange: "589.1", Description: "Substances prohibited from use in animal food", URL: "https://www.ecfr.gov/part-589", Status: core.StatusProhibited, StatusReason: "r"},
		{Title: "Title 21", Chapter: "II", Subchapter: "", Part: "1301", SectionRange: "1301.01 to 1301.93", Description: "Registration of manufacturers, distributors, and dispensers of controlled substances", URL: "https://www.ecfr.gov/part-1301", Status: core.StatusRequiresCompliance, StatusReason: "r"},
		{Title: "Title 21", Chapter: "II", Subchapter: "", Part: "1309", SectionRange: "", Description: "[Reserved]", URL: "", Status: core.StatusReserved, StatusReason: "r"},
		{Title: "Title 21", Chapter: "I", Subchapter: "A", Part: "", SectionRange: "", Description: "Subchapter A definitions overview", URL: "", Status: core.StatusAdministrative, StatusReason: "r"},
	}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	store, changeLog, metaStore, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	stored, err := store.ReplaceAll(ctx, seedRecords()...)
	require.NoError(t, err)

	index := vecindex.New(mock.NewMockEmbedder())
	_, err = index.Build(ctx, stored)
	require.NoError(t, err)

	searcher, err := search.NewSearcher(store, index)
	require.NoError(t, err)

	opts = append([]Option{WithIndex(index)}, opts...)
	srv, err := NewServer(store, changeLog, metaStore, searcher, opts...)
	require.NoError(t, err)

	return &fixture{
		server:    srv,
		router:    srv.Router(),
		store:     store,
		changeLog: changeLog,
		metaStore: metaStore,
		index:     index,
		stored:    stored,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestNewServer_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := NewServer(nil, f.changeLog, f.metaStore, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewServer(f.store, nil, f.metaStore, nil)
	assert.ErrorIs(t, err, ErrChangeLogRequired)

	_, err = NewServer(f.store, f.changeLog, f.metaStore, nil)
	assert.ErrorIs(t, err, ErrSearcherRequired)
}

func TestHandleSearch_Keyword(t *testing.T) {
	f := newFixture(t)

	useSemantic := false
	w := f.do(t, http.MethodPost, "/api/search", map[string]any{
		"query":        "part 1301",
		"use_semantic": &useSemantic,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "part 1301", body["query"])
	assert.Equal(t, "keyword", body["search_method"])
	assert.EqualValues(t, 1, body["count"])
	assert.NotEmpty(t, body["timestamp"])

	results := body["results"].([]any)
	first := results[0].(map[string]any)
	assert.Equal(t, "1301", first["part"])
}

func TestHandleSearch_HybridDefault(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/search", map[string]any{"query": "part 1301"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "hybrid", body["search_method"])
	assert.NotEmpty(t, body["results"])
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/search", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Query is required", decodeBody(t, w)["error"])
}

func TestHandleRegulations_DefaultFilters(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/regulations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 3, "administrative and reserved entries are hidden by default")
	for _, rec := range out {
		assert.NotEqual(t, "Reserved", rec["status"])
		assert.NotEqual(t, "Administrative", rec["status"])
	}

	// Ordered by chapter, subchapter, part.
	assert.Equal(t, "101", out[0]["part"])
	assert.Equal(t, "589", out[1]["part"])
	assert.Equal(t, "1301", out[2]["part"])
}

func TestHandleRegulations_IncludeReserved(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/regulations?include_reserved=true&include_administrative=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 5)
}

func TestHandleRegulations_StatusFilter(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/regulations?status=Prohibited", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "589", out[0]["part"])
}

func TestHandleRegulations_Limit(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/regulations?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 2)
}

func TestHandleRegulationByID(t *testing.T) {
	f := newFixture(t)

	target := f.stored[0]
	w := f.do(t, http.MethodGet, fmt.Sprintf("/api/regulations/%d", target.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, target.Id, body["id"])
	assert.Equal(t, target.Description, body["description"])
	assert.Equal(t, target.Status.String(), body["status"])
}

func TestHandleRegulationByID_NotFound(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/regulations/999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Regulation not found", decodeBody(t, w)["error"])
}

func TestHandleRegulationByID_BadID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/regulations/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.changeLog.AppendChanges(ctx,
		&core.ChangeRecord{RegulationId: 1, ChangeType: core.ChangeAdded, FieldName: "regulation", NewValue: "101: Food labeling"},
		&core.ChangeRecord{RegulationId: 2, ChangeType: core.ChangeUpdated, FieldName: "url", OldValue: "a", NewValue: "b"},
	)
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/changes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])
	assert.EqualValues(t, 30, body["days"])

	changes := body["changes"].([]any)
	require.Len(t, changes, 2)
	newest := changes[0].(map[string]any)
	assert.Equal(t, "updated", newest["change_type"])
	assert.Equal(t, "url", newest["field_name"])
}

func TestHandleChanges_Limit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.changeLog.AppendChanges(ctx, &core.ChangeRecord{
			RegulationId: core.ID(i + 1), ChangeType: core.ChangeAdded, FieldName: "regulation", NewValue: "x",
		})
		require.NoError(t, err)
	}

	w := f.do(t, http.MethodGet, "/api/changes?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])
}

func TestHandleRefresh_NotConfigured(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/refresh", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type blockingSupplier struct {
	entered chan struct{}
	release chan struct{}
	records []*core.Regulation
	once    bool
}

func (s *blockingSupplier) FetchRegulations(ctx context.Context) ([]*core.Regulation, error) {
	if !s.once {
		s.once = true
		close(s.entered)
		<-s.release
	}
	return s.records, nil
}

func TestHandleRefresh_StartsAndRejectsConcurrent(t *testing.T) {
	ctx := context.Background()

	store, changeLog, metaStore, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	index := vecindex.New(mock.NewMockEmbedder())
	searcher, err := search.NewSearcher(store, index)
	require.NoError(t, err)

	supplier := &blockingSupplier{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		records: seedRecords(),
	}
	refresher, err := refresh.NewRefresher(supplier, store, changeLog, metaStore, classify.New(), index,
		refresh.WithSupplyRetry(1, time.Millisecond))
	require.NoError(t, err)
	defer refresher.Release()

	srv, err := NewServer(store, changeLog, metaStore, searcher, WithRefresher(refresher), WithIndex(index))
	require.NoError(t, err)
	f := &fixture{server: srv, router: srv.Router()}

	w := f.do(t, http.MethodPost, "/api/refresh", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "refresh_started", body["status"])
	jobID := body["job_id"].(string)
	assert.NotEmpty(t, jobID)

	<-supplier.entered
	w = f.do(t, http.MethodPost, "/api/refresh", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "refresh_in_progress", decodeBody(t, w)["status"])

	close(supplier.release)

	deadline := time.Now().Add(5 * time.Second)
	for {
		info, err := metaStore.GetLastRefresh(ctx)
		require.NoError(t, err)
		if info != nil {
			assert.Equal(t, jobID, info.JobID)
			break
		}
		require.True(t, time.Now().Before(deadline), "refresh did not complete")
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleStats(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 5, body["total_regulations"])

	byStatus := body["by_status"].(map[string]any)
	assert.EqualValues(t, 2, byStatus["Requires Compliance"])
	assert.EqualValues(t, 1, byStatus["Prohibited"])

	index := body["index"].(map[string]any)
	assert.EqualValues(t, 5, index["indexed_count"])
	assert.Equal(t, true, index["ready"])

	_, hasLastRefresh := body["last_refresh"]
	assert.False(t, hasLastRefresh, "no refresh has completed yet")
}

func TestHandleHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 5, body["regulations"])
	assert.Equal(t, true, body["index_ready"])
}
