package remote

import "context"

// LookupRequest identifies the object to resolve and where the caller is.
type LookupRequest struct {
	ObjectID    string
	CurrentPath string
}

// Nugget is a key/value fact about a resolved object.
type Nugget struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LookupResult is the entity behind an object identifier.
// Type is the server-defined type name, e.g. "MERCHANT" or "ORDER".
type LookupResult struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	URL         string   `json:"url"`
	Nuggets     []Nugget `json:"nuggets"`
}

// FAQRequest is a help center search.
type FAQRequest struct {
	Query  string
	Locale string
}

// FAQArticle is a single help center hit. Snippet may contain HTML.
type FAQArticle struct {
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// FAQResponse holds help center hits in service order.
type FAQResponse struct {
	Results []FAQArticle `json:"results"`
}

// ObjectLookup resolves direct object identifiers.
// Implementations must be thread-safe for concurrent use.
type ObjectLookup interface {
	// LookupObject returns the object for req.ObjectID.
	// Returns nil, nil if no object exists.
	LookupObject(ctx context.Context, req LookupRequest) (*LookupResult, error)
}

// FAQSearcher searches help center articles.
// Implementations must be thread-safe for concurrent use.
type FAQSearcher interface {
	// SearchFAQ returns articles matching req.Query.
	// A nil response means no results.
	SearchFAQ(ctx context.Context, req FAQRequest) (*FAQResponse, error)
}

// Provider aggregates the remote collaborators for convenient initialization
// and lifecycle management.
type Provider interface {
	// ObjectLookup returns the direct object lookup service.
	ObjectLookup() ObjectLookup

	// FAQSearcher returns the help center search service.
	FAQSearcher() FAQSearcher

	// Close releases resources held by the provider and its services.
	Close() error
}
