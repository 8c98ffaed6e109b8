package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/index"
	"github.com/poiesic/omnisearch/navigation"
	"github.com/poiesic/omnisearch/remote"
)

// Blend factors for ranking fuzzy hits.
const (
	TextualWeight    = 0.7
	ImportanceWeight = 0.3
)

// RequestContext parameterizes the remote lookups. It is opaque to ranking.
type RequestContext struct {
	CurrentPath           string
	Locale                string
	MerchantAuthenticated bool
}

// Aggregator runs the search cascade.
type Aggregator struct {
	lookup  remote.ObjectLookup
	faq     remote.FAQSearcher
	monitor SearchMonitor
	logger  *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger.With("component", "search-aggregator")
		return nil
	}
}

// WithMonitor installs a monitor. A nil monitor disables monitoring.
func WithMonitor(monitor SearchMonitor) Option {
	return func(a *Aggregator) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		a.monitor = monitor
		return nil
	}
}

// NewAggregator creates an aggregator backed by provider's services.
// Either service may be nil, in which case that source never has results.
func NewAggregator(provider remote.Provider, opts ...Option) (*Aggregator, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	a := &Aggregator{
		lookup:  provider.ObjectLookup(),
		faq:     provider.FAQSearcher(),
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "search-aggregator"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// FinalScore blends a fuzzy score (0 is a perfect match) with a document
// weight. More negative is better.
func FinalScore(fuzzyScore, weight float64) float64 {
	return -((1-fuzzyScore)*TextualWeight + weight*ImportanceWeight)
}

// Search returns the raw, ordered result list for query against snap.
// It never fails; unavailable sources contribute no results.
func (a *Aggregator) Search(ctx context.Context, snap *index.Snapshot, query string, rc RequestContext) []core.SearchResult {
	q := strings.TrimSpace(query)
	a.monitor.Start(q)

	results := a.cascade(ctx, snap, q, rc)

	a.monitor.Finish(results)
	return results
}

func (a *Aggregator) cascade(ctx context.Context, snap *index.Snapshot, q string, rc RequestContext) []core.SearchResult {
	if q == "" {
		var recent []core.SearchResult
		if snap != nil {
			recent = slices.Clone(snap.Recent)
		}
		a.monitor.TierHit(TierRecent, len(recent))
		return recent
	}

	if core.IsObjectID(q) {
		if res, ok := a.lookupObject(ctx, q, rc); ok {
			a.monitor.TierHit(TierIdentifier, 1)
			return []core.SearchResult{res}
		}
	}

	var fuzzy, faq []core.SearchResult
	var g errgroup.Group
	g.Go(func() error {
		faq = a.searchFAQ(ctx, q, rc)
		return nil
	})
	g.Go(func() error {
		fuzzy = rankFuzzy(snap.Search(q))
		return nil
	})
	_ = g.Wait()

	a.monitor.TierHit(TierFuzzy, len(fuzzy))
	a.monitor.TierHit(TierFAQ, len(faq))
	return append(fuzzy, faq...)
}

func (a *Aggregator) lookupObject(ctx context.Context, id string, rc RequestContext) (core.SearchResult, bool) {
	if a.lookup == nil {
		return core.SearchResult{}, false
	}

	res, err := a.lookup.LookupObject(ctx, remote.LookupRequest{ObjectID: id, CurrentPath: rc.CurrentPath})
	if err != nil {
		a.logger.Warn("object lookup failed", "objectId", id, "err", err)
		a.monitor.SourceFailed(TierIdentifier, err)
		return core.SearchResult{}, false
	}
	if res == nil {
		return core.SearchResult{}, false
	}

	kind, ok := core.ObjectKindFromServer(res.Type)
	if !ok {
		a.logger.Warn("object lookup returned unknown type", "objectId", id, "type", res.Type)
		return core.SearchResult{}, false
	}

	nuggets := make([]core.Nugget, 0, len(res.Nuggets))
	for _, n := range res.Nuggets {
		nuggets = append(nuggets, core.Nugget{Key: n.Key, Value: n.Value})
	}
	return core.SearchResult{
		Type:        kind,
		URL:         res.URL,
		Title:       res.Title,
		Description: res.Description,
		ImageURL:    res.ImageURL,
		Nuggets:     nuggets,
	}, true
}

func (a *Aggregator) searchFAQ(ctx context.Context, q string, rc RequestContext) []core.SearchResult {
	if a.faq == nil || !rc.MerchantAuthenticated {
		return nil
	}

	resp, err := a.faq.SearchFAQ(ctx, remote.FAQRequest{Query: q, Locale: rc.Locale})
	if err != nil {
		a.logger.Warn("faq search failed", "query", q, "err", err)
		a.monitor.SourceFailed(TierFAQ, err)
		return nil
	}
	if resp == nil {
		return nil
	}

	out := make([]core.SearchResult, 0, len(resp.Results))
	for _, article := range resp.Results {
		out = append(out, core.SearchResult{
			Type:        core.KindZendesk,
			URL:         article.HTMLURL,
			Title:       article.Title,
			Description: StripHTML(article.Snippet),
		})
	}
	return out
}

func rankFuzzy(matches []index.Match) []core.SearchResult {
	type scored struct {
		result core.SearchResult
		score  float64
	}
	ranked := make([]scored, len(matches))
	for i, m := range matches {
		ranked[i] = scored{
			result: navigation.ResultFromDocument(m.Item),
			score:  FinalScore(m.Score, m.Item.Weight),
		}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(a.score, b.score)
	})

	out := make([]core.SearchResult, len(ranked))
	for i, r := range ranked {
		out[i] = r.result
	}
	return out
}
