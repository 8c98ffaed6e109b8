package search

import (
	"cmp"
	"slices"

	"github.com/poiesic/omnisearch/core"
)

const (
	// MaxResultsPerGroup caps every ResultGroup.
	MaxResultsPerGroup = 3

	// OverviewNodeID identifies category landing pages in the navigation tree.
	OverviewNodeID = "overview"
)

// Labeler returns the display title of a group.
type Labeler func(core.ResultKind) string

// DescendsFromOverview reports whether doc sits below an overview node.
func DescendsFromOverview(doc *core.WeightedDocument) bool {
	if doc == nil {
		return false
	}
	return slices.ContainsFunc(doc.Parents, func(p *core.NavigationNode) bool {
		return p != nil && p.ID == OverviewNodeID
	})
}

// Group buckets raw by kind, preserving order within each kind, and sorts
// the buckets by kind priority. A nil labeler uses core.ResultKind.Label.
//
// Within a kind, results sharing a URL are kept once. A result below an
// overview node is replaced by a same-kind, same-URL result from anywhere
// in raw that is not below one.
func Group(raw []core.SearchResult, labeler Labeler) []core.ResultGroup {
	if labeler == nil {
		labeler = core.ResultKind.Label
	}

	buckets := make(map[core.ResultKind][]core.SearchResult)
	var order []core.ResultKind
	for _, r := range raw {
		kind := r.Type
		bucket, seen := buckets[kind]
		if len(bucket) >= MaxResultsPerGroup {
			continue
		}
		if containsURL(bucket, r.URL) {
			continue
		}
		if DescendsFromOverview(r.Payload) {
			if canonical, ok := findCanonical(raw, kind, r.URL); ok {
				r = canonical
			}
		}
		if !seen {
			order = append(order, kind)
		}
		buckets[kind] = append(bucket, r)
	}

	groups := make([]core.ResultGroup, 0, len(order))
	for _, kind := range order {
		groups = append(groups, core.ResultGroup{
			Title:   labeler(kind),
			Type:    kind,
			Results: buckets[kind],
		})
	}
	slices.SortStableFunc(groups, func(a, b core.ResultGroup) int {
		return cmp.Compare(a.Type.Priority(), b.Type.Priority())
	})
	return groups
}

func containsURL(results []core.SearchResult, url string) bool {
	return slices.ContainsFunc(results, func(r core.SearchResult) bool {
		return r.URL == url
	})
}

func findCanonical(raw []core.SearchResult, kind core.ResultKind, url string) (core.SearchResult, bool) {
	for _, r := range raw {
		if r.Type == kind && r.URL == url && !DescendsFromOverview(r.Payload) {
			return r, true
		}
	}
	return core.SearchResult{}, false
}
