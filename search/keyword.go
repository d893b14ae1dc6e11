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
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
)

var (
	partPattern    = regexp.MustCompile(`(?:part\s*)?(\d{4,5})`)
	sectionPattern = regexp.MustCompile(`(?:§|section\s*)?(\d{4,5}\.\d+)`)
	chapterPattern = regexp.MustCompile(`chapter\s*(\d+)`)
)

var romanNumerals = []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// KeywordSearcher performs exact-match search over the regulation store by
// keyword, part number, or section number.
type KeywordSearcher struct {
	store storage.RegulationStore
}

// NewKeywordSearcher creates a keyword searcher over the store.
func NewKeywordSearcher(store storage.RegulationStore) *KeywordSearcher {
	return &KeywordSearcher{store: store}
}

// Search returns matching regulations, most relevant first. Section-number
// queries match section ranges exactly, part-number queries prefer exact
// part matches, and everything else is a substring search over the text
// fields. Reserved sections are excluded unless the query asks for them.
func (k *KeywordSearcher) Search(ctx context.Context, query string) ([]*core.Regulation, error) {
	records, err := k.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	excludeReserved := !strings.Contains(queryLower, "reserved")

	var results []*core.Regulation
	if m := sectionPattern.FindStringSubmatch(queryLower); m != nil {
		results = filterRecords(records, excludeReserved, func(r *core.Regulation) bool {
			return strings.Contains(r.SectionRange, m[1]) || containsFold(r.SectionRange, query)
		})
		sortByLocation(results)
	} else if m := partPattern.FindStringSubmatch(queryLower); m != nil {
		partNumber := m[1]
		results = filterRecords(records, excludeReserved, func(r *core.Regulation) bool {
			return strings.Contains(r.Part, partNumber) || strings.Contains(r.SectionRange, partNumber)
		})
		sortByLocation(results)
		// Exact part matches come first
		sort.SliceStable(results, func(a, b int) bool {
			return partRank(results[a], partNumber) < partRank(results[b], partNumber)
		})
	} else {
		patterns := []string{queryLower}
		// "chapter 2" should also find "Chapter II"
		if m := chapterPattern.FindStringSubmatch(queryLower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 10 {
				patterns = append(patterns, strings.ToLower("chapter "+romanNumerals[n]))
			}
		}
		results = filterRecords(records, excludeReserved, func(r *core.Regulation) bool {
			for _, p := range patterns {
				if containsFold(r.Description, p) || containsFold(r.Part, p) ||
					containsFold(r.Subchapter, p) || containsFold(r.SectionRange, p) ||
					containsFold(r.Chapter, p) || containsFold("chapter "+r.Chapter, p) {
					return true
				}
			}
			return false
		})
		sortByLocation(results)
	}

	return results, nil
}

func filterRecords(records []*core.Regulation, excludeReserved bool, match func(*core.Regulation) bool) []*core.Regulation {
	var out []*core.Regulation
	for _, r := range records {
		if excludeReserved && r.Status == core.StatusReserved {
			continue
		}
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func partRank(r *core.Regulation, partNumber string) int {
	if r.Part == partNumber {
		return 1
	}
	return 2
}

// sortByLocation orders records by chapter, subchapter, then part, mirroring
// the browsing order of the CFR itself.
func sortByLocation(records []*core.Regulation) {
	sort.SliceStable(records, func(a, b int) bool {
		if records[a].Chapter != records[b].Chapter {
			return records[a].Chapter < records[b].Chapter
		}
		if records[a].Subchapter != records[b].Subchapter {
			return records[a].Subchapter < records[b].Subchapter
		}
		return records[a].Part < records[b].Part
	})
}
