package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/omnisearch/core"
)

func page(url string) core.SearchResult {
	return core.SearchResult{Type: core.KindPage, URL: url, Title: url}
}

func underParent(r core.SearchResult, parentID string) core.SearchResult {
	r.Payload = &core.WeightedDocument{
		FlattenedNode: core.FlattenedNode{
			Node:    &core.NavigationNode{ID: r.URL, URL: r.URL},
			Parents: []*core.NavigationNode{{ID: "root"}, {ID: parentID}},
		},
	}
	return r
}

func groupURLs(g core.ResultGroup) []string {
	out := make([]string, len(g.Results))
	for i, r := range g.Results {
		out[i] = r.URL
	}
	return out
}

func TestGroup_CapsAndPreservesOrder(t *testing.T) {
	raw := []core.SearchResult{page("/a"), page("/b"), page("/c"), page("/d"), page("/e")}

	groups := Group(raw, nil)

	require.Len(t, groups, 1)
	assert.Equal(t, "Pages", groups[0].Title)
	assert.Equal(t, core.KindPage, groups[0].Type)
	assert.Equal(t, []string{"/a", "/b", "/c"}, groupURLs(groups[0]))
}

func TestGroup_DeduplicatesByURLWithinKind(t *testing.T) {
	raw := []core.SearchResult{page("/a"), page("/a"), page("/b"), page("/a"), page("/c")}

	groups := Group(raw, nil)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"/a", "/b", "/c"}, groupURLs(groups[0]))
}

func TestGroup_OverviewSubstitution(t *testing.T) {
	t.Run("prefers non-overview duplicate found later", func(t *testing.T) {
		overview := underParent(page("/billing"), OverviewNodeID)
		overview.Title = "Billing (overview)"
		specific := underParent(page("/billing"), "settings")
		specific.Title = "Billing"

		groups := Group([]core.SearchResult{overview, page("/x"), specific}, nil)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Results, 2)
		assert.Equal(t, "Billing", groups[0].Results[0].Title)
		assert.False(t, DescendsFromOverview(groups[0].Results[0].Payload))
		assert.Equal(t, "/x", groups[0].Results[1].URL)
	})

	t.Run("ignores duplicate of another kind", func(t *testing.T) {
		overview := underParent(page("/billing"), OverviewNodeID)
		admin := underParent(page("/billing"), "settings")
		admin.Type = core.KindAdminPage

		groups := Group([]core.SearchResult{overview, admin}, nil)

		require.Len(t, groups, 2)
		assert.Equal(t, core.KindPage, groups[0].Type)
		require.Len(t, groups[0].Results, 1)
		assert.Equal(t, core.KindPage, groups[0].Results[0].Type)
		assert.True(t, DescendsFromOverview(groups[0].Results[0].Payload))
		assert.Equal(t, core.KindAdminPage, groups[1].Type)
		assert.Equal(t, []string{"/billing"}, groupURLs(groups[1]))
	})

	t.Run("keeps overview result without duplicate", func(t *testing.T) {
		overview := underParent(page("/billing"), OverviewNodeID)

		groups := Group([]core.SearchResult{overview}, nil)

		require.Len(t, groups, 1)
		assert.True(t, DescendsFromOverview(groups[0].Results[0].Payload))
	})
}

func TestGroup_PriorityOrdering(t *testing.T) {
	raw := []core.SearchResult{
		{Type: core.KindFrequentPage, URL: "/f"},
		{Type: core.KindRecentPage, URL: "/r"},
		{Type: core.ResultKind(99), URL: "/unknown"},
		{Type: core.KindZendesk, URL: "/z"},
		{Type: core.KindAdminPage, URL: "/admin"},
		{Type: core.KindOrder, URL: "/o"},
		{Type: core.KindPage, URL: "/p"},
	}

	groups := Group(raw, nil)

	kinds := make([]core.ResultKind, len(groups))
	for i, g := range groups {
		kinds[i] = g.Type
	}
	assert.Equal(t, []core.ResultKind{
		core.KindOrder,
		core.KindPage,
		core.KindAdminPage,
		core.KindZendesk,
		core.KindRecentPage,
		core.KindFrequentPage,
		core.ResultKind(99),
	}, kinds, "equal priorities keep first-seen order")
}

func TestGroup_Labeler(t *testing.T) {
	groups := Group([]core.SearchResult{page("/a")}, func(k core.ResultKind) string {
		return "label:" + k.String()
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "label:page", groups[0].Title)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil, nil))
}

func TestDescendsFromOverview(t *testing.T) {
	assert.False(t, DescendsFromOverview(nil))
	assert.False(t, DescendsFromOverview(underParent(page("/a"), "orders").Payload))
	assert.True(t, DescendsFromOverview(underParent(page("/a"), OverviewNodeID).Payload))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"How <em>refunds</em> work", "How refunds work"},
		{"<p>One</p><p>Two</p>", "One Two"},
		{"Fish &amp; chips &lt;3", "Fish & chips <3"},
		{"line<br/>break", "line break"},
		{"<script>alert(1)</script>safe", "safe"},
		{"  spaced \n\t out  ", "spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripHTML(tt.in), tt.in)
	}
}
