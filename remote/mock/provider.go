// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mock

import "github.com/poiesic/omnisearch/remote"

// MockProvider is a test double for remote.Provider.
type MockProvider struct {
	lookup *MockObjectLookup
	faq    *MockFAQSearcher
	closed bool
}

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		lookup: NewMockObjectLookup(),
		faq:    NewMockFAQSearcher(),
	}
}

// NewMockProviderWithServices creates a provider with custom mock services.
func NewMockProviderWithServices(lookup *MockObjectLookup, faq *MockFAQSearcher) *MockProvider {
	return &MockProvider{
		lookup: lookup,
		faq:    faq,
	}
}

// ObjectLookup returns the mock lookup.
func (p *MockProvider) ObjectLookup() remote.ObjectLookup {
	if p.lookup == nil {
		return nil
	}
	return p.lookup
}

// FAQSearcher returns the mock FAQ searcher.
func (p *MockProvider) FAQSearcher() remote.FAQSearcher {
	if p.faq == nil {
		return nil
	}
	return p.faq
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockObjectLookup returns the underlying lookup for test assertions.
func (p *MockProvider) GetMockObjectLookup() *MockObjectLookup {
	return p.lookup
}

// GetMockFAQSearcher returns the underlying FAQ searcher for test assertions.
func (p *MockProvider) GetMockFAQSearcher() *MockFAQSearcher {
	return p.faq
}
