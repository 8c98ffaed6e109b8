package remote

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedProvider wraps a Provider with LRU caches for both services.
// Only successful responses are cached, including "not found".
type CachedProvider struct {
	inner  Provider
	lookup ObjectLookup
	faq    FAQSearcher
}

var _ Provider = (*CachedProvider)(nil)

// NewCachedProvider wraps inner with caches holding size entries per service.
// A non-positive size returns inner unchanged.
func NewCachedProvider(inner Provider, size int) Provider {
	if inner == nil || size <= 0 {
		return inner
	}
	p := &CachedProvider{inner: inner}
	if l := inner.ObjectLookup(); l != nil {
		cache, _ := lru.New[LookupRequest, *LookupResult](size)
		p.lookup = &cachedLookup{inner: l, cache: cache}
	}
	if f := inner.FAQSearcher(); f != nil {
		cache, _ := lru.New[FAQRequest, *FAQResponse](size)
		p.faq = &cachedFAQ{inner: f, cache: cache}
	}
	return p
}

// ObjectLookup returns the cached lookup service, or nil if inner has none.
func (p *CachedProvider) ObjectLookup() ObjectLookup {
	if p.lookup == nil {
		return nil
	}
	return p.lookup
}

// FAQSearcher returns the cached FAQ service, or nil if inner has none.
func (p *CachedProvider) FAQSearcher() FAQSearcher {
	if p.faq == nil {
		return nil
	}
	return p.faq
}

// Close closes the wrapped provider.
func (p *CachedProvider) Close() error {
	return p.inner.Close()
}

type cachedLookup struct {
	inner ObjectLookup
	cache *lru.Cache[LookupRequest, *LookupResult]
}

func (c *cachedLookup) LookupObject(ctx context.Context, req LookupRequest) (*LookupResult, error) {
	if res, ok := c.cache.Get(req); ok {
		return res, nil
	}
	res, err := c.inner.LookupObject(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Add(req, res)
	return res, nil
}

type cachedFAQ struct {
	inner FAQSearcher
	cache *lru.Cache[FAQRequest, *FAQResponse]
}

func (c *cachedFAQ) SearchFAQ(ctx context.Context, req FAQRequest) (*FAQResponse, error) {
	if res, ok := c.cache.Get(req); ok {
		return res, nil
	}
	res, err := c.inner.SearchFAQ(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Add(req, res)
	return res, nil
}
