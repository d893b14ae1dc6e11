package search

import (
	"context"
	"log/slog"

	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/vecindex"
)

// Method identifies which retrieval strategy produced a result set.
const (
	MethodKeyword  = "keyword"
	MethodSemantic = "semantic"
	MethodHybrid   = "hybrid"
)

// Result is a complete answer to one search request.
type Result struct {
	Query   string              `json:"query"`
	Results []core.RankedResult `json:"results"`
	Method  string              `json:"search_method"`
}

// Searcher provides hybrid semantic and keyword search over regulations.
type Searcher struct {
	store          storage.RegulationStore
	index          *vecindex.Index
	keyword        *KeywordSearcher
	semanticWeight float64
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSemanticWeight overrides the semantic/keyword balance.
func WithSemanticWeight(w float64) Option {
	return func(s *Searcher) error {
		s.semanticWeight = w
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store storage.RegulationStore, index *vecindex.Index, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		store:          store,
		index:          index,
		keyword:        NewKeywordSearcher(store),
		semanticWeight: DefaultSemanticWeight,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs a query and returns up to limit ranked results.
// With useSemantic false, only the keyword strategy runs. With it true, the
// vector index and keyword results are fused; if the index is empty or
// fails, the search degrades to keyword rather than erroring.
func (s *Searcher) Search(ctx context.Context, query string, useSemantic bool, limit int) (*Result, error) {
	return s.SearchWithMonitor(ctx, query, useSemantic, limit, nil)
}

// SearchWithMonitor is Search with observation hooks for each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, useSemantic bool, limit int, monitor SearchMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit <= 0 {
		limit = 10
	}

	monitor.Start(query)

	keywordHits, err := s.keyword.Search(ctx, query)
	if err != nil {
		s.logger.Error("keyword search failed", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterKeywordSearch(idsOf(keywordHits))

	if !useSemantic {
		result := s.keywordResult(query, keywordHits, limit)
		monitor.Finish(result.Results)
		return result, nil
	}

	// Over-fetch semantic candidates so fusion has room to reorder
	matches, err := s.index.Query(ctx, query, limit*2)
	if err != nil {
		s.logger.Warn("semantic search failed, falling back to keyword", "query", query, "err", err)
		monitor.Degraded("semantic search failed")
		result := s.keywordResult(query, keywordHits, limit)
		monitor.Finish(result.Results)
		return result, nil
	}
	if len(matches) == 0 {
		monitor.Degraded("vector index empty or no semantic hits")
		result := s.keywordResult(query, keywordHits, limit)
		monitor.Finish(result.Results)
		return result, nil
	}

	semanticIds := make([]uint64, len(matches))
	for i, m := range matches {
		semanticIds[i] = uint64(m.Entry.Id)
	}
	monitor.AfterSemanticSearch(semanticIds)

	// No keyword hits: semantic results stand alone, unweighted
	if len(keywordHits) == 0 {
		ranked := make([]core.RankedResult, 0, limit)
		for _, m := range matches {
			if len(ranked) == limit {
				break
			}
			ranked = append(ranked, rankedFromEntry(m.Entry, m.Score, core.SourceSemantic))
		}
		result := &Result{Query: query, Results: ranked, Method: MethodSemantic}
		monitor.Finish(result.Results)
		return result, nil
	}

	semantic := make([]ScoredID, len(matches))
	meta := make(map[core.ID]core.RankedResult, len(matches)+len(keywordHits))
	for i, m := range matches {
		semantic[i] = ScoredID{Id: m.Entry.Id, Score: m.Score}
		meta[m.Entry.Id] = rankedFromEntry(m.Entry, 0, core.SourceSemantic)
	}
	keywordIds := make([]core.ID, len(keywordHits))
	for i, r := range keywordHits {
		keywordIds[i] = r.Id
		if _, ok := meta[r.Id]; !ok {
			meta[r.Id] = rankedFromRecord(r, 0, core.SourceKeyword)
		}
	}

	merged := MergeRanked(semantic, keywordIds, s.semanticWeight, limit)

	ranked := make([]core.RankedResult, len(merged))
	for i, hit := range merged {
		entry := meta[hit.Id]
		entry.Score = hit.Score
		entry.Source = hit.Source
		ranked[i] = entry
	}

	result := &Result{Query: query, Results: ranked, Method: MethodHybrid}
	monitor.Finish(result.Results)
	return result, nil
}

// keywordResult converts a keyword hit list into a ranked result, scored by
// inverse rank.
func (s *Searcher) keywordResult(query string, hits []*core.Regulation, limit int) *Result {
	if len(hits) > limit {
		hits = hits[:limit]
	}
	ranked := make([]core.RankedResult, len(hits))
	for i, r := range hits {
		ranked[i] = rankedFromRecord(r, 1.0/float64(i+1), core.SourceKeyword)
	}
	return &Result{Query: query, Results: ranked, Method: MethodKeyword}
}

func rankedFromEntry(e core.IndexedRegulation, score float64, source core.MatchSource) core.RankedResult {
	return core.RankedResult{
		Id:           e.Id,
		Chapter:      e.Chapter,
		Subchapter:   e.Subchapter,
		Part:         e.Part,
		SectionRange: e.SectionRange,
		Description:  e.Description,
		Status:       e.Status,
		URL:          e.URL,
		Score:        score,
		Source:       source,
	}
}

func rankedFromRecord(r *core.Regulation, score float64, source core.MatchSource) core.RankedResult {
	return core.RankedResult{
		Id:           r.Id,
		Chapter:      r.Chapter,
		Subchapter:   r.Subchapter,
		Part:         r.Part,
		SectionRange: r.SectionRange,
		Description:  r.Description,
		Status:       r.Status.String(),
		URL:          r.URL,
		Score:        score,
		Source:       source,
	}
}

func idsOf(records []*core.Regulation) []uint64 {
	ids := make([]uint64, len(records))
	for i, r := range records {
		ids[i] = uint64(r.Id)
	}
	return ids
}
