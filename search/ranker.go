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


package search

import (
	"sort"

	"github.com/dsaini64/regulations/core"
)

// DefaultSemanticWeight balances semantic similarity against keyword rank.
// 0.0 means keyword only, 1.0 means semantic only.
const DefaultSemanticWeight = 0.7

// ScoredID is a semantic search hit entering the ranker.
type ScoredID struct {
	Id    core.ID
	Score float64
}

// MergedHit is one entry of the fused ranking.
type MergedHit struct {
	Id     core.ID
	Score  float64
	Source core.MatchSource
}

// MergeRanked fuses a semantic result list (similarity-scored) with a
// keyword result list (rank-ordered) into a single ranking of at most k
// hits.
//
// A semantic hit contributes similarity * semanticWeight. A keyword hit at
// zero-based rank r contributes (1-semanticWeight) / (r+1). A regulation
// found by both signals sums the contributions and is marked SourceBoth.
// Ties keep semantic-first insertion order, so ranking is deterministic.
func MergeRanked(semantic []ScoredID, keyword []core.ID, semanticWeight float64, k int) []MergedHit {
	if k <= 0 {
		return []MergedHit{}
	}

	index := make(map[core.ID]int, len(semantic))
	merged := make([]MergedHit, 0, len(semantic)+len(keyword))

	for _, hit := range semantic {
		if pos, ok := index[hit.Id]; ok {
			// Duplicate semantic id: keep the better score
			if s := hit.Score * semanticWeight; s > merged[pos].Score {
				merged[pos].Score = s
			}
			continue
		}
		index[hit.Id] = len(merged)
		merged = append(merged, MergedHit{
			Id:     hit.Id,
			Score:  hit.Score * semanticWeight,
			Source: core.SourceSemantic,
		})
	}

	keywordWeight := 1.0 - semanticWeight
	for rank, id := range keyword {
		score := keywordWeight / float64(rank+1)
		if pos, ok := index[id]; ok {
			merged[pos].Score += score
			merged[pos].Source = core.SourceBoth
			continue
		}
		index[id] = len(merged)
		merged = append(merged, MergedHit{
			Id:     id,
			Score:  score,
			Source: core.SourceKeyword,
		})
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Score > merged[b].Score
	})

	if len(merged) > k {
		merged = merged[:k]
	}
	return merged
}
