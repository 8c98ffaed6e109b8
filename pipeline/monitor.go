package pipeline

import "time"

// Monitor observes search cycles and index rebuilds.
// Implementations are called from pool workers and must be thread-safe.
type Monitor interface {
	CycleStarted(cycle uint64, query string)
	CyclePublished(cycle uint64, elapsed time.Duration, results int)
	CycleStale(cycle uint64, elapsed time.Duration)
	IndexRebuilt(version uint64, documents int)
}

type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) CycleStarted(_ uint64, _ string)                 {}
func (n *noopMonitor) CyclePublished(_ uint64, _ time.Duration, _ int) {}
func (n *noopMonitor) CycleStale(_ uint64, _ time.Duration)            {}
func (n *noopMonitor) IndexRebuilt(_ uint64, _ int)                    {}
