// Package httpapi implements the remote services over HTTP.
//
// Object lookups are sent as a GraphQL POST request to Config.LookupEndpoint.
// FAQ searches use the Zendesk Help Center article search endpoint under
// Config.FAQHost. A service whose endpoint is empty is disabled and the
// provider returns nil for it.
package httpapi
