package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/omnisearch/remote"
)

// MockFAQSearcher is a test double for remote.FAQSearcher.
type MockFAQSearcher struct {
	// SearchFAQFunc is called by SearchFAQ if set.
	// If nil, every search returns no results.
	SearchFAQFunc func(ctx context.Context, req remote.FAQRequest) (*remote.FAQResponse, error)

	callCount atomic.Int64
}

// NewMockFAQSearcher creates a searcher that returns no results.
func NewMockFAQSearcher() *MockFAQSearcher {
	return &MockFAQSearcher{}
}

// SearchFAQ records the call and delegates to SearchFAQFunc.
func (m *MockFAQSearcher) SearchFAQ(ctx context.Context, req remote.FAQRequest) (*remote.FAQResponse, error) {
	m.callCount.Add(1)
	if m.SearchFAQFunc != nil {
		return m.SearchFAQFunc(ctx, req)
	}
	return nil, nil
}

// CallCount returns the number of searches performed.
func (m *MockFAQSearcher) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom behavior.
func (m *MockFAQSearcher) Reset() {
	m.callCount.Store(0)
	m.SearchFAQFunc = nil
}

// Articles returns a SearchFAQFunc answering every query with the given articles.
func Articles(articles ...remote.FAQArticle) func(context.Context, remote.FAQRequest) (*remote.FAQResponse, error) {
	return func(context.Context, remote.FAQRequest) (*remote.FAQResponse, error) {
		return &remote.FAQResponse{Results: articles}, nil
	}
}
