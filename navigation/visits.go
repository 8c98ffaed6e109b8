package navigation

import (
	"slices"

	"github.com/poiesic/omnisearch/core"
)

const (
	// DefaultHomeNodeID is the node excluded from the visit fallbacks.
	DefaultHomeNodeID = "home"
	// VisitListLimit caps both fallback lists.
	VisitListLimit = 10
)

// MostRecentlyVisited returns up to ten documents ordered by last visit,
// newest first, excluding the home node. Unvisited documents count as 0.
func MostRecentlyVisited(docs []core.WeightedDocument, homeID string) []core.SearchResult {
	ranked := rankVisits(docs, homeID, func(d *core.WeightedDocument) int64 {
		return lastVisitMillis(d.Node)
	})
	return retag(ranked, core.KindRecentPage)
}

// FrequentlyVisited returns up to ten documents ordered by total hits,
// excluding the home node and any (title, url) pair already present in recent.
func FrequentlyVisited(docs []core.WeightedDocument, homeID string, recent []core.SearchResult) []core.SearchResult {
	ranked := rankVisits(docs, homeID, func(d *core.WeightedDocument) int64 {
		return d.Node.Visits.TotalHits
	})
	frequent := retag(ranked, core.KindFrequentPage)

	type pair struct{ title, url string }
	surfaced := make(map[pair]struct{}, len(recent))
	for _, r := range recent {
		surfaced[pair{r.Title, r.URL}] = struct{}{}
	}
	return slices.DeleteFunc(frequent, func(r core.SearchResult) bool {
		_, dup := surfaced[pair{r.Title, r.URL}]
		return dup
	})
}

func rankVisits(docs []core.WeightedDocument, homeID string, key func(*core.WeightedDocument) int64) []*core.WeightedDocument {
	ranked := make([]*core.WeightedDocument, 0, len(docs))
	for i := range docs {
		if docs[i].Node.ID == homeID {
			continue
		}
		ranked = append(ranked, &docs[i])
	}
	slices.SortStableFunc(ranked, func(a, b *core.WeightedDocument) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		default:
			return 0
		}
	})
	if len(ranked) > VisitListLimit {
		ranked = ranked[:VisitListLimit]
	}
	return ranked
}

func retag(docs []*core.WeightedDocument, kind core.ResultKind) []core.SearchResult {
	out := make([]core.SearchResult, 0, len(docs))
	for _, d := range docs {
		r := ResultFromDocument(d)
		r.Type = kind
		out = append(out, r)
	}
	return out
}

// ResultFromDocument builds a SearchResult carrying doc as payload.
func ResultFromDocument(doc *core.WeightedDocument) core.SearchResult {
	return core.SearchResult{
		Type:         doc.Kind,
		URL:          doc.Node.URL,
		Title:        doc.Title,
		Description:  doc.Description,
		Keywords:     doc.Keywords,
		Breadcrumbs:  doc.Breadcrumbs,
		SearchPhrase: doc.SearchPhrase,
		Weight:       doc.Weight,
		Payload:      doc,
	}
}
