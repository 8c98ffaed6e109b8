package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/omnisearch/remote"
)

// MockObjectLookup is a test double for remote.ObjectLookup.
type MockObjectLookup struct {
	// LookupObjectFunc is called by LookupObject if set.
	// If nil, every lookup reports "not found".
	LookupObjectFunc func(ctx context.Context, req remote.LookupRequest) (*remote.LookupResult, error)

	callCount atomic.Int64
}

// NewMockObjectLookup creates a lookup that finds nothing.
func NewMockObjectLookup() *MockObjectLookup {
	return &MockObjectLookup{}
}

// LookupObject records the call and delegates to LookupObjectFunc.
func (m *MockObjectLookup) LookupObject(ctx context.Context, req remote.LookupRequest) (*remote.LookupResult, error) {
	m.callCount.Add(1)
	if m.LookupObjectFunc != nil {
		return m.LookupObjectFunc(ctx, req)
	}
	return nil, nil
}

// CallCount returns the number of lookups performed.
func (m *MockObjectLookup) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom behavior.
func (m *MockObjectLookup) Reset() {
	m.callCount.Store(0)
	m.LookupObjectFunc = nil
}
