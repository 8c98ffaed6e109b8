// Package mock provides test double implementations of the remote service interfaces.
//
// The mocks let tests run without network access and with deterministic,
// controllable behavior.
//
// # Usage in Tests
//
//	lookup := mock.NewMockObjectLookup()
//	lookup.LookupObjectFunc = func(ctx context.Context, req remote.LookupRequest) (*remote.LookupResult, error) {
//	    return &remote.LookupResult{Type: "ORDER", Title: "Order 42"}, nil
//	}
//	provider := mock.NewMockProviderWithServices(lookup, mock.NewMockFAQSearcher())
//
//	// Check call counts
//	count := lookup.CallCount()
//
// # Default Behavior
//
//   - MockObjectLookup: returns nil (not found)
//   - MockFAQSearcher: returns nil (no results)
//   - MockProvider: aggregates both
package mock
