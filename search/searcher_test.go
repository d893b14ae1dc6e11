package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dsaini64/regulations/ai/mock"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/vecindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()
	index := vecindex.New(mock.NewMockEmbedder())

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(store, index)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(store, index, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(store, index, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSearcher(nil, index)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewSearcher(store, nil)
		assert.Equal(t, ErrIndexRequired, err)
	})
}

func TestSearchKeywordOnly(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()
	index := vecindex.New(mock.NewMockEmbedder())

	searcher, err := NewSearcher(store, index)
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "Part 1308", false, 10)
	require.NoError(t, err)
	assert.Equal(t, MethodKeyword, result.Method)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "1308", result.Results[0].Part)
	assert.Equal(t, core.SourceKeyword, result.Results[0].Source)
	assert.InDelta(t, 1.0, result.Results[0].Score, 1e-9)
}

func TestSearchHybrid(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	records, err := store.GetAll(context.Background())
	require.NoError(t, err)

	index := vecindex.New(mock.NewMockEmbedder())
	_, err = index.Build(context.Background(), records)
	require.NoError(t, err)

	searcher, err := NewSearcher(store, index)
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "controlled substances", true, 5)
	require.NoError(t, err)
	assert.Equal(t, MethodHybrid, result.Method)
	require.NotEmpty(t, result.Results)
	assert.LessOrEqual(t, len(result.Results), 5)

	// Keyword hits for this query exist, so the fused list must contain
	// at least one regulation found by both signals.
	foundBoth := false
	for _, r := range result.Results {
		if r.Source == core.SourceBoth {
			foundBoth = true
		}
	}
	assert.True(t, foundBoth)

	// Scores descend
	for i := 1; i < len(result.Results); i++ {
		assert.GreaterOrEqual(t, result.Results[i-1].Score, result.Results[i].Score)
	}
}

func TestSearchSemanticOnlyWhenNoKeywordHits(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	records, err := store.GetAll(context.Background())
	require.NoError(t, err)

	index := vecindex.New(mock.NewMockEmbedder())
	_, err = index.Build(context.Background(), records)
	require.NoError(t, err)

	searcher, err := NewSearcher(store, index)
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "veterinary telepathy", true, 3)
	require.NoError(t, err)
	assert.Equal(t, MethodSemantic, result.Method)
	require.Len(t, result.Results, 3)
	for _, r := range result.Results {
		assert.Equal(t, core.SourceSemantic, r.Source)
	}
}

func TestSearchDegradesToKeywordOnEmptyIndex(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	index := vecindex.New(mock.NewMockEmbedder())
	searcher, err := NewSearcher(store, index)
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "food labeling", true, 10)
	require.NoError(t, err)
	assert.Equal(t, MethodKeyword, result.Method)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "101", result.Results[0].Part)
}

func TestSearchDegradesToKeywordOnEmbedderFailure(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	records, err := store.GetAll(context.Background())
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	index := vecindex.New(embedder)
	_, err = index.Build(context.Background(), records)
	require.NoError(t, err)

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	searcher, err := NewSearcher(store, index)
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "schedules", true, 10)
	require.NoError(t, err)
	assert.Equal(t, MethodKeyword, result.Method)
	require.NotEmpty(t, result.Results)
}

func TestSearchDefaultLimit(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()
	index := vecindex.New(mock.NewMockEmbedder())

	searcher, err := NewSearcher(store, index)
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), "regulations", false, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Results), 10)
}
