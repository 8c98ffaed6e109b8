package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/omnisearch/remote"
)

func testConfig(opts ...remote.ConfigOption) *remote.Config {
	base := []remote.ConfigOption{
		remote.WithTimeout(time.Second),
		remote.WithRetryDelay(time.Millisecond),
	}
	return remote.NewConfig(append(base, opts...)...)
}

func TestNewProvider_DisabledServices(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	assert.Nil(t, p.ObjectLookup())
	assert.Nil(t, p.FAQSearcher())
	assert.NoError(t, p.Close())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(testConfig(remote.WithFAQHost("not-a-url")))
	assert.Error(t, err)
}

func TestNewProvider_NilConfig(t *testing.T) {
	p, err := NewProvider(nil)
	assert.ErrorIs(t, err, remote.ErrConfigRequired)
	assert.Nil(t, p)

	p, err = NewProviderWithClient(nil, http.DefaultClient)
	assert.ErrorIs(t, err, remote.ErrConfigRequired)
	assert.Nil(t, p)
}

func TestObjectLookup(t *testing.T) {
	var gotReq graphQLRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"omnisearchLookup":{"type":"ORDER","title":"Order #42","url":"/orders/42","nuggets":[{"key":"Status","value":"Shipped"}]}}}`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithLookupEndpoint(srv.URL), remote.WithAuthToken("tok")))
	require.NoError(t, err)

	res, err := p.ObjectLookup().LookupObject(context.Background(), remote.LookupRequest{
		ObjectID:    "507f1f77bcf86cd799439011",
		CurrentPath: "/dashboard",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "ORDER", res.Type)
	assert.Equal(t, "Order #42", res.Title)
	assert.Equal(t, []remote.Nugget{{Key: "Status", Value: "Shipped"}}, res.Nuggets)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "507f1f77bcf86cd799439011", gotReq.Variables["objectId"])
	assert.Equal(t, "/dashboard", gotReq.Variables["currentPath"])
}

func TestObjectLookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"omnisearchLookup":null}}`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithLookupEndpoint(srv.URL)))
	require.NoError(t, err)

	res, err := p.ObjectLookup().LookupObject(context.Background(), remote.LookupRequest{ObjectID: "x"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestObjectLookup_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"forbidden"}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithLookupEndpoint(srv.URL)))
	require.NoError(t, err)

	_, err = p.ObjectLookup().LookupObject(context.Background(), remote.LookupRequest{ObjectID: "x"})
	assert.ErrorIs(t, err, ErrGraphQL)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestObjectLookup_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data":{"omnisearchLookup":{"type":"MERCHANT","title":"Acme"}}}`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithLookupEndpoint(srv.URL), remote.WithMaxAttempts(2)))
	require.NoError(t, err)

	res, err := p.ObjectLookup().LookupObject(context.Background(), remote.LookupRequest{ObjectID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", res.Title)
	assert.Equal(t, int32(2), calls.Load())
}

func TestObjectLookup_RetryClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantCalls int32
	}{
		{"unauthorized is not retried", http.StatusUnauthorized, "", 1},
		{"not found is not retried", http.StatusNotFound, "", 1},
		{"service unavailable is retried", http.StatusServiceUnavailable, "", 3},
		{"too many requests is retried", http.StatusTooManyRequests, "", 3},
		{"malformed body is not retried", http.StatusOK, "{not json", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, err := NewProvider(testConfig(remote.WithLookupEndpoint(srv.URL), remote.WithMaxAttempts(3)))
			require.NoError(t, err)

			_, err = p.ObjectLookup().LookupObject(context.Background(), remote.LookupRequest{ObjectID: "x"})
			require.Error(t, err)
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.status != http.StatusOK {
				var status *remote.StatusError
				require.ErrorAs(t, err, &status)
				assert.Equal(t, tt.status, status.Code)
			}
		})
	}
}

func TestObjectLookup_GraphQLErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"data":null,"errors":[{"message":"forbidden"}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithLookupEndpoint(srv.URL), remote.WithMaxAttempts(3)))
	require.NoError(t, err)

	_, err = p.ObjectLookup().LookupObject(context.Background(), remote.LookupRequest{ObjectID: "x"})
	assert.ErrorIs(t, err, ErrGraphQL)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFAQSearcher_TransportErrorIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := srv.URL
	srv.Close()

	p, err := NewProvider(testConfig(remote.WithFAQHost(host), remote.WithMaxAttempts(2)))
	require.NoError(t, err)

	_, err = p.FAQSearcher().SearchFAQ(context.Background(), remote.FAQRequest{Query: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrTransient)
}

func TestFAQSearcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, faqSearchPath, r.URL.Path)
		assert.Equal(t, "refund policy", r.URL.Query().Get("query"))
		assert.Equal(t, "de", r.URL.Query().Get("locale"))
		w.Write([]byte(`{"results":[
			{"id":1,"html_url":"https://help.example.com/a/1","title":"Refunds","snippet":"How <em>refunds</em> work"},
			{"id":2,"html_url":"https://help.example.com/a/2","title":"Returns","snippet":"Returning items"}
		]}`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithFAQHost(srv.URL + "/")))
	require.NoError(t, err)

	resp, err := p.FAQSearcher().SearchFAQ(context.Background(), remote.FAQRequest{Query: "refund policy", Locale: "de"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Refunds", resp.Results[0].Title)
	assert.Equal(t, "How <em>refunds</em> work", resp.Results[0].Snippet)
	assert.Equal(t, int64(2), resp.Results[1].ID)
}

func TestFAQSearcher_StatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(remote.WithFAQHost(srv.URL), remote.WithMaxAttempts(3)))
	require.NoError(t, err)

	_, err = p.FAQSearcher().SearchFAQ(context.Background(), remote.FAQRequest{Query: "x"})
	assert.ErrorIs(t, err, remote.ErrUnexpectedStatus)
	assert.Equal(t, int32(1), calls.Load())
}
