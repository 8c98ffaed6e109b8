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

package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/poiesic/omnisearch/remote"
)

// Provider implements remote.Provider over HTTP.
type Provider struct {
	config *remote.Config
	client *http.Client
	lookup *ObjectLookup
	faq    *FAQSearcher
	logger *slog.Logger
}

// NewProvider creates a provider for the configured endpoints.
// The config is validated and normalized before use.
func NewProvider(config *remote.Config) (remote.Provider, error) {
	if config == nil {
		return nil, remote.ErrConfigRequired
	}
	p, err := newProvider(config, &http.Client{Timeout: config.Timeout})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewProviderWithClient is NewProvider with a caller-supplied HTTP client.
func NewProviderWithClient(config *remote.Config, client *http.Client) (remote.Provider, error) {
	if config == nil {
		return nil, remote.ErrConfigRequired
	}
	p, err := newProvider(config, client)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newProvider(config *remote.Config, client *http.Client) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &Provider{
		config: config,
		client: client,
		logger: slog.Default().With("component", "httpapi-provider"),
	}
	if config.LookupEndpoint != "" {
		p.lookup = newObjectLookup(config, client)
	}
	if config.FAQHost != "" {
		p.faq = newFAQSearcher(config, client)
	}
	return p, nil
}

// ObjectLookup returns the GraphQL lookup service, or nil when disabled.
func (p *Provider) ObjectLookup() remote.ObjectLookup {
	if p.lookup == nil {
		return nil
	}
	return p.lookup
}

// FAQSearcher returns the help center search service, or nil when disabled.
func (p *Provider) FAQSearcher() remote.FAQSearcher {
	if p.faq == nil {
		return nil
	}
	return p.faq
}

// Close releases idle connections.
func (p *Provider) Close() error {
	p.logger.Debug("closing HTTP provider")
	p.client.CloseIdleConnections()
	return nil
}
