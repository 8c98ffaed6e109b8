// Package query debounces raw search-bar input into committed queries.
package query

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/omnisearch/core"
)

// DefaultDebounce is the quiet period before a typed query is committed.
const DefaultDebounce = 300 * time.Millisecond

// Normalizer turns a stream of raw keystroke states into committed queries.
//
// Each Update restarts the quiet-period timer. When the timer fires and the
// raw value has not changed since it was scheduled, the trimmed value is
// committed. A value that is a direct object identifier commits at once.
// Listeners run once per change of the committed value, in commit order.
type Normalizer struct {
	window time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	raw       string
	committed string
	timer     *time.Timer
	gen       uint64 // bumped by every Update; stale timers compare against it
	stopped   bool
	listeners map[uint64]func(string)
	nextID    uint64

	notifyMu sync.Mutex // serializes commit+notify so listeners observe commit order
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDebounce sets the quiet period. Non-positive values use DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(n *Normalizer) {
		if d <= 0 {
			d = DefaultDebounce
		}
		n.window = d
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
	}
}

// NewNormalizer creates a Normalizer with an empty committed query.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		window:    DefaultDebounce,
		logger:    slog.Default(),
		listeners: make(map[uint64]func(string)),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.With("component", "query-normalizer")
	return n
}

// OnCommit registers fn to be called with every new committed query.
// The returned function unregisters it.
func (n *Normalizer) OnCommit(fn func(string)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Update records the latest raw input.
func (n *Normalizer) Update(raw string) {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	n.raw = raw
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	if core.IsObjectID(strings.TrimSpace(raw)) {
		gen := n.gen
		n.mu.Unlock()
		n.commit(gen)
		return
	}
	gen := n.gen
	n.timer = time.AfterFunc(n.window, func() {
		n.commit(gen)
	})
	n.mu.Unlock()
}

// commit publishes trim(raw) if no newer Update happened since gen was taken.
func (n *Normalizer) commit(gen uint64) {
	n.notifyMu.Lock()
	defer n.notifyMu.Unlock()

	n.mu.Lock()
	if n.stopped || gen != n.gen {
		n.mu.Unlock()
		return
	}
	value := strings.TrimSpace(n.raw)
	if value == n.committed {
		n.mu.Unlock()
		return
	}
	n.committed = value
	listeners := n.listenersLocked()
	n.mu.Unlock()

	n.logger.Debug("query committed", "query", value)
	for _, fn := range listeners {
		fn(value)
	}
}

// Recommit delivers the committed query to the listeners again, even
// though it has not changed. Delivery is ordered with regular commits.
func (n *Normalizer) Recommit() {
	n.notifyMu.Lock()
	defer n.notifyMu.Unlock()

	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	value := n.committed
	listeners := n.listenersLocked()
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

func (n *Normalizer) listenersLocked() []func(string) {
	listeners := make([]func(string), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

// CommitNow commits pending input without waiting for the debounce window.
func (n *Normalizer) CommitNow() {
	n.mu.Lock()
	if n.timer == nil {
		n.mu.Unlock()
		return
	}
	n.timer.Stop()
	n.timer = nil
	gen := n.gen
	n.mu.Unlock()
	n.commit(gen)
}

// Raw returns the latest raw input.
func (n *Normalizer) Raw() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.raw
}

// Committed returns the current committed query.
func (n *Normalizer) Committed() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.committed
}

// Stop cancels any pending commit. Further updates are ignored.
func (n *Normalizer) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
