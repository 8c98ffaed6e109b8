package pipeline

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/index"
	"github.com/poiesic/omnisearch/navigation"
	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/remote"
	"github.com/poiesic/omnisearch/search"
)

// DefaultPoolSize is the number of cycles that may run concurrently.
const DefaultPoolSize = 4

// Publication is the output of one completed, non-stale search cycle.
type Publication struct {
	Cycle       uint64
	Query       string
	TreeVersion uint64
	Results     []core.SearchResult
	Groups      []core.ResultGroup
	PublishedAt time.Time
}

// Pipeline runs search cycles for one search bar.
type Pipeline struct {
	aggregator *search.Aggregator
	normalizer *query.Normalizer
	pool       *ants.Pool

	snapshot    atomic.Pointer[index.Snapshot]
	treeMu      sync.Mutex
	treeVersion uint64

	guard guard

	rcMu sync.RWMutex
	rc   search.RequestContext

	// notifyMu serializes the staleness check with delivery.
	notifyMu    sync.Mutex
	subMu       sync.Mutex
	subscribers map[uint64]func(Publication)
	nextSubID   uint64
	latest      Publication

	inflightMu   sync.Mutex
	inflightCond *sync.Cond
	inflight     int

	cancelCommit func()
	released     atomic.Bool

	// configuration
	poolSize      int
	debounce      time.Duration
	homeID        string
	initialTree   *core.NavigationNode
	indexOpts     []index.Option
	searchMonitor search.SearchMonitor
	labeler       search.Labeler
	monitor       Monitor
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent cycles.
// Default is DefaultPoolSize, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithDebounce sets the quiet window before a typed query commits.
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.debounce = d
		return nil
	}
}

// WithHomeNodeID sets the node excluded from the visit fallbacks.
// Default is navigation.DefaultHomeNodeID.
func WithHomeNodeID(id string) Option {
	return func(p *Pipeline) error {
		if id == "" {
			id = navigation.DefaultHomeNodeID
		}
		p.homeID = id
		return nil
	}
}

// WithTree sets the tree searched by the initial cycle.
func WithTree(root *core.NavigationNode) Option {
	return func(p *Pipeline) error {
		p.initialTree = root
		return nil
	}
}

// WithIndexOptions passes options to every index build.
func WithIndexOptions(opts ...index.Option) Option {
	return func(p *Pipeline) error {
		p.indexOpts = append(p.indexOpts, opts...)
		return nil
	}
}

// WithRequestContext sets the initial request context.
func WithRequestContext(rc search.RequestContext) Option {
	return func(p *Pipeline) error {
		p.rc = rc
		return nil
	}
}

// WithLabeler sets the group title function.
func WithLabeler(labeler search.Labeler) Option {
	return func(p *Pipeline) error {
		p.labeler = labeler
		return nil
	}
}

// WithMonitor installs a cycle monitor.
func WithMonitor(monitor Monitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithSearchMonitor installs a monitor on the aggregator.
func WithSearchMonitor(monitor search.SearchMonitor) Option {
	return func(p *Pipeline) error {
		p.searchMonitor = monitor
		return nil
	}
}

// NewPipeline creates a pipeline and runs one cycle for the empty query, so
// subscribers and Latest see the recently visited pages right away.
func NewPipeline(provider remote.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	p := &Pipeline{
		subscribers: make(map[uint64]func(Publication)),
		poolSize:    DefaultPoolSize,
		debounce:    query.DefaultDebounce,
		homeID:      navigation.DefaultHomeNodeID,
		monitor:     &noopMonitor{},
		logger:      slog.Default(),
	}
	p.inflightCond = sync.NewCond(&p.inflightMu)

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	base := p.logger
	p.logger = base.With("component", "search-pipeline")

	aggregator, err := search.NewAggregator(provider,
		search.WithLogger(base),
		search.WithMonitor(p.searchMonitor),
	)
	if err != nil {
		return nil, err
	}
	p.aggregator = aggregator

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	p.normalizer = query.NewNormalizer(
		query.WithDebounce(p.debounce),
		query.WithLogger(base),
	)
	p.cancelCommit = p.normalizer.OnCommit(p.launch)

	p.rebuild(p.initialTree)
	p.initialTree = nil
	p.launch("")

	return p, nil
}

// Input feeds the raw search bar contents.
func (p *Pipeline) Input(raw string) {
	p.normalizer.Update(raw)
}

// SetTree replaces the navigation tree and re-runs the committed query
// against it. A nil tree clears the index.
func (p *Pipeline) SetTree(root *core.NavigationNode) error {
	if p.released.Load() {
		return ErrReleased
	}
	p.rebuild(root)
	p.normalizer.Recommit()
	return nil
}

// SetRequestContext replaces the context used by subsequent cycles.
func (p *Pipeline) SetRequestContext(rc search.RequestContext) {
	p.rcMu.Lock()
	defer p.rcMu.Unlock()
	p.rc = rc
}

// Subscribe registers fn for every publication. The returned function
// unsubscribes. Deliveries are serialized.
func (p *Pipeline) Subscribe(fn func(Publication)) (cancel func()) {
	p.subMu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	p.subMu.Unlock()

	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		delete(p.subscribers, id)
	}
}

// Latest returns the most recent publication.
func (p *Pipeline) Latest() Publication {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	return p.latest
}

// Committed returns the query the pipeline last committed.
func (p *Pipeline) Committed() string {
	return p.normalizer.Committed()
}

// Snapshot returns the index currently searched.
func (p *Pipeline) Snapshot() *index.Snapshot {
	return p.snapshot.Load()
}

// MostRecentlyVisited returns the recent pages of the current tree.
func (p *Pipeline) MostRecentlyVisited() []core.SearchResult {
	return slices.Clone(p.snapshot.Load().Recent)
}

// FrequentlyVisited returns the frequent pages not already listed as recent.
func (p *Pipeline) FrequentlyVisited() []core.SearchResult {
	return slices.Clone(p.snapshot.Load().Frequent)
}

// CommitPending commits debounced input immediately.
func (p *Pipeline) CommitPending() {
	p.normalizer.CommitNow()
}

// Flush blocks until every launched cycle has finished.
// It does not wait for a pending debounce.
func (p *Pipeline) Flush() {
	p.inflightMu.Lock()
	defer p.inflightMu.Unlock()
	for p.inflight > 0 {
		p.inflightCond.Wait()
	}
}

// Release stops accepting input, waits for running cycles and releases
// the worker pool. It must not be called from a subscriber. The pipeline
// should not be used after calling Release.
func (p *Pipeline) Release() {
	if !p.released.CompareAndSwap(false, true) {
		return
	}
	p.cancelCommit()
	p.normalizer.Stop()
	p.Flush()
	p.pool.Release()
}

func (p *Pipeline) rebuild(root *core.NavigationNode) {
	p.treeMu.Lock()
	defer p.treeMu.Unlock()

	p.treeVersion++
	snap := index.Build(root, p.treeVersion, p.homeID, p.indexOpts...)
	p.snapshot.Store(snap)

	p.logger.Debug("index rebuilt", "version", snap.Version, "documents", len(snap.Documents))
	p.monitor.IndexRebuilt(snap.Version, len(snap.Documents))
}

func (p *Pipeline) requestContext() search.RequestContext {
	p.rcMu.RLock()
	defer p.rcMu.RUnlock()
	return p.rc
}

// launch issues a token and submits a cycle for q.
func (p *Pipeline) launch(q string) {
	if p.released.Load() {
		return
	}

	token := p.guard.issue()
	snap := p.snapshot.Load()
	rc := p.requestContext()
	started := time.Now()
	p.monitor.CycleStarted(token, q)

	p.inflightMu.Lock()
	p.inflight++
	p.inflightMu.Unlock()

	err := p.pool.Submit(func() {
		defer p.done()
		p.run(token, snap, q, rc, started)
	})
	if err != nil {
		p.done()
		p.logger.Error("error submitting search cycle", "cycle", token, "err", err)
	}
}

func (p *Pipeline) done() {
	p.inflightMu.Lock()
	p.inflight--
	p.inflightMu.Unlock()
	p.inflightCond.Broadcast()
}

func (p *Pipeline) run(token uint64, snap *index.Snapshot, q string, rc search.RequestContext, started time.Time) {
	results := p.aggregator.Search(context.Background(), snap, q, rc)
	groups := search.Group(results, p.labeler)

	p.publish(Publication{
		Cycle:       token,
		Query:       q,
		TreeVersion: snap.Version,
		Results:     results,
		Groups:      groups,
	}, started)
}

func (p *Pipeline) publish(pub Publication, started time.Time) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	elapsed := time.Since(started)
	if !p.guard.isCurrent(pub.Cycle) {
		p.logger.Debug("dropping stale cycle", "cycle", pub.Cycle, "query", pub.Query)
		p.monitor.CycleStale(pub.Cycle, elapsed)
		return
	}

	pub.PublishedAt = time.Now().UTC()
	p.subMu.Lock()
	p.latest = pub
	subscribers := make([]func(Publication), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subscribers = append(subscribers, fn)
	}
	p.subMu.Unlock()

	p.monitor.CyclePublished(pub.Cycle, elapsed, len(pub.Results))
	for _, fn := range subscribers {
		fn(pub)
	}
}
