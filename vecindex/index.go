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


package vecindex

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dsaini64/regulations/ai"
	"github.com/dsaini64/regulations/core"
)

// Description length kept in index metadata. Full text lives in the store.
const maxEntryDescriptionLen = 500

// Match is a single semantic search hit.
type Match struct {
	Entry core.IndexedRegulation
	Score float64
}

// Index is an in-memory vector index over the regulation set. It is a
// derived cache: Build recreates it wholesale from the store's records, and
// an optional snapshot file lets it survive restarts without re-embedding.
//
// All methods are safe for concurrent use. Queries keep serving the previous
// generation while a rebuild is in flight; the swap is atomic.
type Index struct {
	embedder ai.Embedder
	logger   *slog.Logger

	snapshotPath string

	mu      sync.RWMutex
	dim     int
	entries []core.IndexedRegulation
	vectors [][]float32
}

// Option configures an Index.
type Option func(*Index)

// WithSnapshotPath enables snapshot persistence at the given file path.
func WithSnapshotPath(path string) Option {
	return func(ix *Index) {
		ix.snapshotPath = path
	}
}

// New creates an Index. If a snapshot path is configured and a valid
// snapshot exists there, it is loaded; a corrupt or unreadable snapshot is
// discarded with a warning and the index starts empty.
func New(embedder ai.Embedder, opts ...Option) *Index {
	ix := &Index{
		embedder: embedder,
		logger:   slog.Default().With("component", "vecindex"),
	}
	for _, opt := range opts {
		opt(ix)
	}

	if ix.snapshotPath != "" {
		snapshot, err := loadSnapshot(ix.snapshotPath)
		if err != nil {
			ix.logger.Warn("could not load index snapshot, starting empty", "path", ix.snapshotPath, "err", err)
		} else if snapshot != nil {
			ix.dim = snapshot.Dim
			ix.entries = snapshot.Entries
			ix.vectors = snapshot.Vectors
			ix.logger.Info("loaded index snapshot", "entries", len(ix.entries), "dim", ix.dim)
		}
	}

	return ix
}

// Count returns the number of indexed regulations.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Dim returns the embedding dimensionality, or 0 when the index is empty.
func (ix *Index) Dim() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.dim
}

// Build re-embeds all records and atomically replaces the index contents.
// On any embedding failure the existing index is left untouched. Returns the
// number of indexed records.
func (ix *Index) Build(ctx context.Context, records []*core.Regulation) (int, error) {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = buildSearchText(r)
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = ix.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embedding failed: %w", err)
		}
		if len(vectors) != len(records) {
			return 0, fmt.Errorf("embedder returned %d vectors for %d records", len(vectors), len(records))
		}
	}

	dim := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return 0, fmt.Errorf("embedder returned empty vector for record %d", i)
		}
		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return 0, fmt.Errorf("inconsistent vector dimensions: %d and %d", dim, len(v))
		}
	}

	entries := make([]core.IndexedRegulation, len(records))
	for i, r := range records {
		entries[i] = core.IndexedRegulation{
			Id:           r.Id,
			Title:        r.Title,
			Chapter:      r.Chapter,
			Subchapter:   r.Subchapter,
			Part:         r.Part,
			SectionRange: r.SectionRange,
			Description:  core.Truncate(r.Description, maxEntryDescriptionLen),
			Status:       r.Status.String(),
			URL:          r.URL,
		}
	}

	ix.mu.Lock()
	ix.dim = dim
	ix.entries = entries
	ix.vectors = vectors
	ix.mu.Unlock()

	if ix.snapshotPath != "" {
		snapshot := &core.IndexSnapshot{Dim: dim, Entries: entries, Vectors: vectors}
		if err := saveSnapshot(ix.snapshotPath, snapshot); err != nil {
			// The in-memory index is valid; only durability is degraded.
			ix.logger.Warn("could not persist index snapshot", "path", ix.snapshotPath, "err", err)
		}
	}

	ix.logger.Info("index built", "entries", len(entries), "dim", dim)
	return len(entries), nil
}

// Query embeds the query text and returns the k nearest regulations by
// squared L2 distance, scored as 1/(1+distance). An unbuilt index returns an
// empty result without error.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]Match, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 || k <= 0 {
		return []Match{}, nil
	}

	queryVec, err := ix.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	matches := make([]Match, len(ix.entries))
	for i := range ix.entries {
		dist := squaredL2(queryVec, ix.vectors[i])
		matches[i] = Match{
			Entry: ix.entries[i],
			Score: 1.0 / (1.0 + dist),
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// squaredL2 computes the squared euclidean distance between two vectors.
// Mismatched dimensions compare over the shorter prefix.
func squaredL2(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var sum float64
	for i := 0; i < minLen; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// buildSearchText assembles the text embedded for a regulation. Empty fields
// are omitted so sparse records don't embed filler.
func buildSearchText(r *core.Regulation) string {
	var parts []string
	if r.Part != "" {
		parts = append(parts, "Part "+r.Part)
	}
	if r.Chapter != "" {
		parts = append(parts, "Chapter "+r.Chapter)
	}
	if r.Subchapter != "" {
		parts = append(parts, "Subchapter "+r.Subchapter)
	}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	if r.SectionRange != "" {
		parts = append(parts, "Sections "+r.SectionRange)
	}
	return strings.Join(parts, " | ")
}
