package navigation

import (
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitedAt(ts time.Time) *time.Time {
	return &ts
}

func sampleTree() *core.NavigationNode {
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return &core.NavigationNode{
		ID:    "root",
		Label: "Root",
		Children: []*core.NavigationNode{
			{
				ID:    "home",
				Label: "Home",
				URL:   "/",
				Visits: core.VisitStats{
					TotalHits:     500,
					MostRecentHit: visitedAt(base.Add(2 * time.Hour)),
				},
			},
			{
				ID:    "orders",
				Label: "Orders",
				Children: []*core.NavigationNode{
					{
						ID:           "orders-history",
						Label:        "History",
						URL:          "/orders/history",
						SearchPhrase: "order history",
						Keywords:     []string{"past orders"},
						Visits: core.VisitStats{
							TotalHits:     40,
							MostRecentHit: visitedAt(base),
						},
					},
					{
						ID:    "orders-action",
						Label: "Action Required",
						URL:   "/orders/action",
						Visits: core.VisitStats{
							TotalHits: 10,
						},
					},
				},
			},
			{
				ID:    "settings",
				Label: "",
				Admin: true,
				Children: []*core.NavigationNode{
					{
						ID:    "settings-users",
						Label: "Users",
						URL:   "/settings/users",
					},
				},
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	t.Run("nil tree", func(t *testing.T) {
		assert.Nil(t, Flatten(nil))
	})

	t.Run("root without children", func(t *testing.T) {
		assert.Empty(t, Flatten(&core.NavigationNode{ID: "root"}))
	})

	t.Run("leaves with ancestors in document order", func(t *testing.T) {
		flat := Flatten(sampleTree())
		require.Len(t, flat, 4)

		ids := make([]string, len(flat))
		for i, fn := range flat {
			ids[i] = fn.Node.ID
		}
		assert.Equal(t, []string{"home", "orders-history", "orders-action", "settings-users"}, ids)

		require.Len(t, flat[0].Parents, 1)
		assert.Equal(t, "root", flat[0].Parents[0].ID)

		require.Len(t, flat[1].Parents, 2)
		assert.Equal(t, "root", flat[1].Parents[0].ID)
		assert.Equal(t, "orders", flat[1].Parents[1].ID)
	})

	t.Run("siblings do not share ancestor storage", func(t *testing.T) {
		root := &core.NavigationNode{ID: "root", Children: []*core.NavigationNode{
			{ID: "a", Children: []*core.NavigationNode{
				{ID: "a1", Children: []*core.NavigationNode{{ID: "a1x"}}},
				{ID: "a2", Children: []*core.NavigationNode{{ID: "a2x"}}},
			}},
		}}
		flat := Flatten(root)
		require.Len(t, flat, 2)
		assert.Equal(t, "a1", flat[0].Parents[2].ID)
		assert.Equal(t, "a2", flat[1].Parents[2].ID)
	})
}

func TestWeigh(t *testing.T) {
	docs := Weigh(Flatten(sampleTree()))
	require.Len(t, docs, 4)

	byID := make(map[string]core.WeightedDocument)
	for _, d := range docs {
		byID[d.Node.ID] = d
	}

	t.Run("weights follow the blend formula", func(t *testing.T) {
		home := byID["home"]
		assert.InDelta(t, 1.0, home.Weight, 1e-9)

		history := byID["orders-history"]
		base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		wantRecency := float64(base.UnixMilli()) / float64(base.Add(2*time.Hour).UnixMilli())
		assert.InDelta(t, 0.6*(40.0/500.0)+0.4*wantRecency, history.Weight, 1e-9)

		action := byID["orders-action"]
		assert.InDelta(t, 0.6*(10.0/500.0), action.Weight, 1e-9)

		assert.Zero(t, byID["settings-users"].Weight)
	})

	t.Run("weights stay in range", func(t *testing.T) {
		for _, d := range docs {
			assert.GreaterOrEqual(t, d.Weight, 0.0)
			assert.LessOrEqual(t, d.Weight, 1.0)
		}
	})

	t.Run("denormalized fields", func(t *testing.T) {
		history := byID["orders-history"]
		assert.Equal(t, "History", history.Title)
		assert.Equal(t, "order history", history.SearchPhrase)
		assert.Equal(t, []string{"Root", "Orders", "History"}, history.Breadcrumbs)
		assert.Equal(t, core.KindPage, history.Kind)

		action := byID["orders-action"]
		assert.Equal(t, "Action Required", action.SearchPhrase, "falls back to label")

		users := byID["settings-users"]
		assert.Equal(t, []string{"Root", "Users"}, users.Breadcrumbs, "empty ancestor labels are skipped")
		assert.Equal(t, core.KindAdminPage, users.Kind)
	})

	t.Run("no visits at all", func(t *testing.T) {
		root := &core.NavigationNode{ID: "root", Children: []*core.NavigationNode{
			{ID: "a", Label: "A"}, {ID: "b", Label: "B"},
		}}
		for _, d := range Weigh(Flatten(root)) {
			assert.Zero(t, d.Weight)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Weigh(nil))
	})
}

func TestMostRecentlyVisited(t *testing.T) {
	docs := Weigh(Flatten(sampleTree()))
	recent := MostRecentlyVisited(docs, DefaultHomeNodeID)

	require.Len(t, recent, 3)
	assert.Equal(t, "/orders/history", recent[0].URL)
	for _, r := range recent {
		assert.Equal(t, core.KindRecentPage, r.Type)
		assert.NotEqual(t, "/", r.URL, "home is excluded")
		require.NotNil(t, r.Payload)
	}
}

func TestMostRecentlyVisited_Limit(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	root := &core.NavigationNode{ID: "root"}
	for i := 0; i < 15; i++ {
		root.Children = append(root.Children, &core.NavigationNode{
			ID:     fmt.Sprintf("n%d", i),
			Label:  fmt.Sprintf("Node %d", i),
			URL:    fmt.Sprintf("/n/%d", i),
			Visits: core.VisitStats{TotalHits: int64(i), MostRecentHit: visitedAt(base.Add(time.Duration(i) * time.Minute))},
		})
	}
	recent := MostRecentlyVisited(Weigh(Flatten(root)), DefaultHomeNodeID)
	require.Len(t, recent, VisitListLimit)
	assert.Equal(t, "/n/14", recent[0].URL)
	for i := 1; i < len(recent); i++ {
		prev := recent[i-1].Payload.Node.Visits.MostRecentHit
		cur := recent[i].Payload.Node.Visits.MostRecentHit
		assert.False(t, cur.After(*prev), "sorted newest first")
	}
}

func TestFrequentlyVisited(t *testing.T) {
	docs := Weigh(Flatten(sampleTree()))

	t.Run("excludes entries surfaced by recency", func(t *testing.T) {
		recent := MostRecentlyVisited(docs, DefaultHomeNodeID)
		frequent := FrequentlyVisited(docs, DefaultHomeNodeID, recent)

		seen := make(map[string]bool)
		for _, r := range recent {
			seen[r.Title+"|"+r.URL] = true
		}
		for _, f := range frequent {
			assert.False(t, seen[f.Title+"|"+f.URL], "duplicate of recent: %s", f.URL)
			assert.Equal(t, core.KindFrequentPage, f.Type)
		}
	})

	t.Run("ordered by hits without recent filter", func(t *testing.T) {
		frequent := FrequentlyVisited(docs, DefaultHomeNodeID, nil)
		require.Len(t, frequent, 3)
		assert.Equal(t, "/orders/history", frequent[0].URL)
		assert.Equal(t, "/orders/action", frequent[1].URL)
	})

	t.Run("custom home id", func(t *testing.T) {
		frequent := FrequentlyVisited(docs, "orders-history", nil)
		require.Len(t, frequent, 3)
		assert.Equal(t, "/", frequent[0].URL)
	})
}
