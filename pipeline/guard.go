package pipeline

import "sync/atomic"

// guard issues cycle tokens. Only the holder of the newest token may publish.
type guard struct {
	latest atomic.Uint64
}

func (g *guard) issue() uint64 {
	return g.latest.Add(1)
}

func (g *guard) isCurrent(token uint64) bool {
	return g.latest.Load() == token
}
