package vecindex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsaini64/regulations/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.snapshot")
	records := testRecords()

	embedder := mock.NewMockEmbedder()
	ix := New(embedder, WithSnapshotPath(path))
	_, err := ix.Build(context.Background(), records)
	require.NoError(t, err)
	require.FileExists(t, path)

	// A fresh index over the same snapshot comes up populated without
	// touching the embedder.
	restoreEmbedder := mock.NewMockEmbedder()
	restoreEmbedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("must not re-embed on restore")
	}
	restored := New(restoreEmbedder, WithSnapshotPath(path))
	assert.Equal(t, ix.Count(), restored.Count())
	assert.Equal(t, ix.Dim(), restored.Dim())

	matches, err := restored.Query(context.Background(), "schedules of controlled substances", 3)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestSnapshotCorruptFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.snapshot")
	records := testRecords()

	ix := New(mock.NewMockEmbedder(), WithSnapshotPath(path))
	_, err := ix.Build(context.Background(), records)
	require.NoError(t, err)

	// Flip a payload byte; checksum verification must reject the file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	restored := New(mock.NewMockEmbedder(), WithSnapshotPath(path))
	assert.Zero(t, restored.Count())
}

func TestSnapshotTruncatedFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.snapshot")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02}, 0644))

	restored := New(mock.NewMockEmbedder(), WithSnapshotPath(path))
	assert.Zero(t, restored.Count())
}

func TestSnapshotMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.snapshot")
	ix := New(mock.NewMockEmbedder(), WithSnapshotPath(path))
	assert.Zero(t, ix.Count())
}
