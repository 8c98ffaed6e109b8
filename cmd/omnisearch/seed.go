package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/navigation"
	"github.com/poiesic/omnisearch/treefile"
)

var sectionNames = []string{
	"Orders", "Products", "Customers", "Payments", "Shipping", "Reports",
	"Marketing", "Settings", "Inventory", "Disputes", "Payouts", "Tax",
}

var pageNames = []string{
	"Overview", "History", "Create", "Import", "Export", "Search",
	"Templates", "Rules", "Notifications", "Audit Log", "Drafts", "Archive",
}

func seedCommand(c *cli.Context) error {
	sections := c.Int("sections")
	pages := c.Int("pages")
	if sections < 1 || pages < 1 {
		return fmt.Errorf("sections and pages must be positive")
	}

	root := generateTree(sections, pages, rand.New(rand.NewPCG(uint64(c.Int64("seed")), 0)), time.Now().UTC())
	if err := treefile.Save(c.String("out"), root); err != nil {
		return err
	}
	slog.Info("tree written", "path", c.String("out"), "sections", sections, "pages", sections*pages)
	return nil
}

// generateTree builds a home page plus sections of leaf pages with random
// visit counters.
func generateTree(sections, pages int, rng *rand.Rand, now time.Time) *core.NavigationNode {
	root := &core.NavigationNode{
		ID: "root",
		Children: []*core.NavigationNode{
			{ID: navigation.DefaultHomeNodeID, Label: "Home", URL: "/"},
		},
	}

	for s := range sections {
		name := nameAt(sectionNames, s)
		slug := fmt.Sprintf("section-%d", s)
		section := &core.NavigationNode{
			ID:    slug,
			Label: name,
		}
		for p := range pages {
			label := nameAt(pageNames, p)
			page := &core.NavigationNode{
				ID:       fmt.Sprintf("%s-page-%d", slug, p),
				Label:    label,
				URL:      fmt.Sprintf("/%s/%d", slug, p),
				Keywords: []string{name, label},
			}
			if rng.IntN(3) > 0 {
				hit := now.Add(-time.Duration(rng.IntN(30*24)) * time.Hour)
				page.Visits = core.VisitStats{
					TotalHits:     int64(rng.IntN(200)),
					MostRecentHit: &hit,
				}
			}
			section.Children = append(section.Children, page)
		}
		root.Children = append(root.Children, section)
	}
	return root
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s %d", names[i%len(names)], i/len(names)+1)
}
