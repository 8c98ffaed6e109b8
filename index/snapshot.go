package index

import (
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/navigation"
)

// Snapshot holds everything derived from one navigation tree. It is never
// modified after Build and may be shared by any number of readers.
type Snapshot struct {
	Version   uint64
	Root      *core.NavigationNode
	Documents []core.WeightedDocument
	Index     *FuzzyIndex
	Recent    []core.SearchResult
	Frequent  []core.SearchResult
	BuiltAt   time.Time
}

// Build flattens and weighs root, indexes the documents and precomputes the
// visit fallbacks. A nil root produces an empty snapshot.
func Build(root *core.NavigationNode, version uint64, homeID string, opts ...Option) *Snapshot {
	docs := navigation.Weigh(navigation.Flatten(root))
	recent := navigation.MostRecentlyVisited(docs, homeID)
	return &Snapshot{
		Version:   version,
		Root:      root,
		Documents: docs,
		Index:     NewFuzzyIndex(docs, opts...),
		Recent:    recent,
		Frequent:  navigation.FrequentlyVisited(docs, homeID, recent),
		BuiltAt:   time.Now().UTC(),
	}
}

// Search queries the snapshot's index. A nil snapshot has no results.
func (s *Snapshot) Search(text string) []Match {
	if s == nil || s.Index == nil {
		return nil
	}
	return s.Index.Search(text)
}
