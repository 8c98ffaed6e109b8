package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/omnisearch/remote"
)

const lookupQuery = `query OmnisearchLookup($objectId: String!, $currentPath: String!) {
  omnisearchLookup(objectId: $objectId, currentPath: $currentPath) {
    type
    title
    description
    imageUrl
    url
    nuggets { key value }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type lookupResponse struct {
	Data struct {
		OmnisearchLookup *remote.LookupResult `json:"omnisearchLookup"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// ErrGraphQL is returned when the lookup endpoint reports query errors.
var ErrGraphQL = errors.New("graphql error")

// ObjectLookup implements remote.ObjectLookup against a GraphQL endpoint.
type ObjectLookup struct {
	config *remote.Config
	client *http.Client
	logger *slog.Logger
}

func newObjectLookup(config *remote.Config, client *http.Client) *ObjectLookup {
	return &ObjectLookup{
		config: config,
		client: client,
		logger: slog.Default().With("component", "httpapi-lookup"),
	}
}

// LookupObject resolves req.ObjectID. A null lookup field means not found.
func (l *ObjectLookup) LookupObject(ctx context.Context, req remote.LookupRequest) (*remote.LookupResult, error) {
	body, err := json.Marshal(graphQLRequest{
		Query: lookupQuery,
		Variables: map[string]any{
			"objectId":    req.ObjectID,
			"currentPath": req.CurrentPath,
		},
	})
	if err != nil {
		return nil, err
	}

	var out lookupResponse
	err = remote.Retry(ctx, l.config.MaxAttempts, l.config.RetryDelay, func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.config.LookupEndpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if l.config.AuthToken != "" {
			httpReq.Header.Set("Authorization", "Bearer "+l.config.AuthToken)
		}
		out = lookupResponse{}
		return doJSON(l.client, httpReq, &out)
	})
	if err != nil {
		l.logger.Debug("object lookup failed", "objectId", req.ObjectID, "err", err)
		return nil, err
	}

	if len(out.Errors) > 0 {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}
	return out.Data.OmnisearchLookup, nil
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return remote.Transient(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &remote.StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
