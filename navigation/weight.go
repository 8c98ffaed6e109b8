package navigation

import "github.com/poiesic/omnisearch/core"

const (
	// FrequencyWeight is the share of visit frequency in a document weight.
	FrequencyWeight = 0.6
	// RecencyWeight is the share of visit recency in a document weight.
	RecencyWeight = 0.4
)

// Weigh converts flattened nodes into weighted documents.
//
// Normalization is global: frequency is TotalHits over the maximum across all
// nodes, recency is the last visit (unix millis) over the most recent visit
// across all nodes. Either score is 0 when its maximum is 0.
func Weigh(nodes []core.FlattenedNode) []core.WeightedDocument {
	var maxHits int64
	var maxRecent int64
	for _, fn := range nodes {
		if fn.Node.Visits.TotalHits > maxHits {
			maxHits = fn.Node.Visits.TotalHits
		}
		if r := lastVisitMillis(fn.Node); r > maxRecent {
			maxRecent = r
		}
	}

	docs := make([]core.WeightedDocument, 0, len(nodes))
	for _, fn := range nodes {
		var frequency, recency float64
		if maxHits > 0 {
			frequency = float64(fn.Node.Visits.TotalHits) / float64(maxHits)
		}
		if maxRecent > 0 {
			if r := lastVisitMillis(fn.Node); r > 0 {
				recency = float64(r) / float64(maxRecent)
			}
		}
		docs = append(docs, newDocument(fn, FrequencyWeight*frequency+RecencyWeight*recency))
	}
	return docs
}

func newDocument(fn core.FlattenedNode, weight float64) core.WeightedDocument {
	node := fn.Node
	phrase := node.SearchPhrase
	if phrase == "" {
		phrase = node.Label
	}
	return core.WeightedDocument{
		FlattenedNode: fn,
		Weight:        weight,
		Kind:          documentKind(fn),
		Title:         node.Label,
		SearchPhrase:  phrase,
		Keywords:      node.Keywords,
		Description:   node.Description,
		Breadcrumbs:   breadcrumbs(fn),
	}
}

// breadcrumbs returns the non-empty ancestor labels followed by the node's own label.
func breadcrumbs(fn core.FlattenedNode) []string {
	crumbs := make([]string, 0, len(fn.Parents)+1)
	for _, p := range fn.Parents {
		if p.Label == "" {
			continue
		}
		crumbs = append(crumbs, p.Label)
	}
	return append(crumbs, fn.Node.Label)
}

func documentKind(fn core.FlattenedNode) core.ResultKind {
	if fn.Node.Admin {
		return core.KindAdminPage
	}
	for _, p := range fn.Parents {
		if p.Admin {
			return core.KindAdminPage
		}
	}
	return core.KindPage
}

func lastVisitMillis(node *core.NavigationNode) int64 {
	if node.Visits.MostRecentHit == nil {
		return 0
	}
	return node.Visits.MostRecentHit.UnixMilli()
}
