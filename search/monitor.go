package search

import "github.com/poiesic/omnisearch/core"

// Tier names a stage of the search cascade.
type Tier string

const (
	TierRecent     Tier = "recent"
	TierIdentifier Tier = "identifier"
	TierFuzzy      Tier = "fuzzy"
	TierFAQ        Tier = "faq"
)

// SearchMonitor provides hooks to observe the search process.
// Implementations are called from concurrent goroutines and must be thread-safe.
type SearchMonitor interface {
	Start(query string)
	TierHit(tier Tier, count int)
	SourceFailed(tier Tier, err error)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) TierHit(_ Tier, _ int)        {}
func (n *noopMonitor) SourceFailed(_ Tier, _ error) {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}
