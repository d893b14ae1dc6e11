package vecindex

import (
	"context"
	"errors"
	"testing"

	"github.com/dsaini64/regulations/ai/mock"
	"github.com/dsaini64/regulations/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planted returns an embedder that maps known texts to fixed vectors, so
// distances in tests are exact.
func plantedEmbedder(queryVec []float32, docVecs map[string][]float32) *mock.MockEmbedder {
	e := mock.NewMockEmbedder()
	e.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return queryVec, nil
	}
	e.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			v, ok := docVecs[text]
			if !ok {
				return nil, errors.New("unexpected text: " + text)
			}
			out[i] = v
		}
		return out, nil
	}
	return e
}

func testRecords() []*core.Regulation {
	return []*core.Regulation{
		{Id: 1, Part: "1300", Chapter: "II", Description: "Definitions", Status: core.StatusAdministrative},
		{Id: 2, Part: "1308", Chapter: "II", Description: "Schedules of controlled substances", Status: core.StatusRequiresCompliance},
		{Id: 3, Part: "1301", Chapter: "II", Description: "Registration of manufacturers", Status: core.StatusRequiresCompliance},
	}
}

func TestIndexBuildAndQuery(t *testing.T) {
	records := testRecords()
	docVecs := map[string][]float32{
		buildSearchText(records[0]): {1, 0, 0},
		buildSearchText(records[1]): {0, 1, 0},
		buildSearchText(records[2]): {0, 0, 1},
	}
	// Closest to records[1], then records[2], then records[0]
	embedder := plantedEmbedder([]float32{0.1, 0.9, 0.3}, docVecs)

	ix := New(embedder)
	n, err := ix.Build(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, ix.Count())
	assert.Equal(t, 3, ix.Dim())

	matches, err := ix.Query(context.Background(), "schedules", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, core.ID(2), matches[0].Entry.Id)
	assert.Equal(t, core.ID(3), matches[1].Entry.Id)
	assert.Greater(t, matches[0].Score, matches[1].Score)

	// Scores follow 1/(1+d) with d the squared L2 distance
	assert.InDelta(t, 1.0/(1.0+(0.1*0.1+0.1*0.1+0.3*0.3)), matches[0].Score, 1e-6)
}

func TestIndexQueryEmptyIndex(t *testing.T) {
	ix := New(mock.NewMockEmbedder())

	matches, err := ix.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndexBuildEmptySet(t *testing.T) {
	ix := New(mock.NewMockEmbedder())
	n, err := ix.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, ix.Count())
}

func TestIndexBuildFailureKeepsOldGeneration(t *testing.T) {
	records := testRecords()
	embedder := mock.NewMockEmbedder()

	ix := New(embedder)
	_, err := ix.Build(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 3, ix.Count())

	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	_, err = ix.Build(context.Background(), records)
	require.Error(t, err)

	// The previous generation still serves
	assert.Equal(t, 3, ix.Count())
	matches, err := ix.Query(context.Background(), "registration", 3)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestIndexDescriptionTruncatedInMetadata(t *testing.T) {
	long := make([]byte, 1200)
	for i := range long {
		long[i] = 'r'
	}
	records := []*core.Regulation{
		{Id: 7, Part: "1310", Description: string(long), Status: core.StatusRequiresCompliance},
	}

	ix := New(mock.NewMockEmbedder())
	_, err := ix.Build(context.Background(), records)
	require.NoError(t, err)

	matches, err := ix.Query(context.Background(), "records", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Len(t, matches[0].Entry.Description, maxEntryDescriptionLen)
}

func TestIndexEntryCarriesDisplayStatus(t *testing.T) {
	records := []*core.Regulation{
		{Id: 4, Part: "589", Description: "Substances prohibited from use in animal food", Status: core.StatusProhibited},
	}

	ix := New(mock.NewMockEmbedder())
	_, err := ix.Build(context.Background(), records)
	require.NoError(t, err)

	matches, err := ix.Query(context.Background(), "prohibited substances", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Prohibited", matches[0].Entry.Status)
}

func TestBuildSearchText(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		text := buildSearchText(&core.Regulation{
			Part:         "1308",
			Chapter:      "II",
			Subchapter:   "A",
			Description:  "Schedules",
			SectionRange: "1308.01 to 1308.49",
		})
		assert.Equal(t, "Part 1308 | Chapter II | Subchapter A | Schedules | Sections 1308.01 to 1308.49", text)
	})

	t.Run("sparse record skips empty fields", func(t *testing.T) {
		text := buildSearchText(&core.Regulation{Description: "Definitions"})
		assert.Equal(t, "Definitions", text)
	})
}
