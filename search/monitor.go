package search

import "github.com/dsaini64/regulations/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterKeywordSearch(ids []uint64)
	AfterSemanticSearch(ids []uint64)
	Degraded(reason string)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterKeywordSearch(_ []uint64)        {}
func (n *noopMonitor) AfterSemanticSearch(_ []uint64)       {}
func (n *noopMonitor) Degraded(_ string)                    {}
func (n *noopMonitor) Finish(_ []core.RankedResult)         {}
