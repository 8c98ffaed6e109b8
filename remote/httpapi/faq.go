package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/poiesic/omnisearch/remote"
)

const faqSearchPath = "/api/v2/help_center/articles/search.json"

// FAQSearcher implements remote.FAQSearcher against the Zendesk Help Center API.
type FAQSearcher struct {
	config *remote.Config
	client *http.Client
	logger *slog.Logger
}

func newFAQSearcher(config *remote.Config, client *http.Client) *FAQSearcher {
	return &FAQSearcher{
		config: config,
		client: client,
		logger: slog.Default().With("component", "httpapi-faq"),
	}
}

// SearchFAQ queries the help center. The locale is omitted when empty.
func (f *FAQSearcher) SearchFAQ(ctx context.Context, req remote.FAQRequest) (*remote.FAQResponse, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	if req.Locale != "" {
		params.Set("locale", req.Locale)
	}
	endpoint := f.config.FAQHost + faqSearchPath + "?" + params.Encode()

	var out remote.FAQResponse
	err := remote.Retry(ctx, f.config.MaxAttempts, f.config.RetryDelay, func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		httpReq.Header.Set("Accept", "application/json")
		out = remote.FAQResponse{}
		return doJSON(f.client, httpReq, &out)
	})
	if err != nil {
		f.logger.Debug("faq search failed", "query", req.Query, "err", err)
		return nil, err
	}
	f.logger.Debug("faq search", "query", req.Query, "results", len(out.Results))
	return &out, nil
}
