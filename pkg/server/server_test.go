package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyq/storyq/pkg/config"
	"github.com/storyq/storyq/pkg/contract"
	"github.com/storyq/storyq/pkg/query"
	"github.com/storyq/storyq/pkg/store"
	"github.com/storyq/storyq/pkg/utils"
)

type searchCall struct {
	filter     string
	identity   query.Context
	maxResults int
	pageToken  string
	requestID  string
}

type fakeStore struct {
	calls []searchCall
	err   *contract.Error
}

func (f *fakeStore) SearchStories(
	ctx context.Context,
	filter string,
	identity query.Context,
	maxResults int,
	pageToken string,
) (*store.PagedList[*contract.Story], *contract.Error) {
	f.calls = append(f.calls, searchCall{filter, identity, maxResults, pageToken, utils.RequestID(ctx)})

	if f.err != nil {
		return nil, f.err
	}

	return &store.PagedList[*contract.Story]{
		Items: []*contract.Story{{
			ID:      1001,
			Title:   "Fix flaky test",
			Owner:   "alice",
			Status:  "NEW",
			Branch:  "main",
			Created: time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC),
			Updated: time.Date(2024, 5, 17, 11, 0, 0, 0, time.UTC),
		}},
		NextPageToken: utils.PtrTo("next"),
	}, nil
}

func (f *fakeStore) ExplainSearch(filter string, identity query.Context) (*contract.ExplainQueryResponse, *contract.Error) {
	f.calls = append(f.calls, searchCall{filter: filter, identity: identity})

	if f.err != nil {
		return nil, f.err
	}

	return &contract.ExplainQueryResponse{Dialect: "sqlite", SQL: "1 = 1", Vars: []any{}}, nil
}

func (f *fakeStore) Close() error {
	return nil
}

func newTestApp(t *testing.T) (*fakeStore, func(*http.Request) (*http.Response, []byte)) {
	t.Helper()

	cfg := config.Default()
	cfg.Username = "alice"
	cfg.Version = "1.2.3"

	stories := &fakeStore{}

	app, err := NewApp(cfg, stories)
	require.NoError(t, err)

	return stories, func(req *http.Request) (*http.Response, []byte) {
		t.Helper()

		resp, err := app.Test(req)
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		return resp, body
	}
}

func searchURL(path string, params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	return path + "?" + values.Encode()
}

func decodeError(t *testing.T, body []byte) contract.Error {
	t.Helper()

	var e contract.Error
	require.NoError(t, json.Unmarshal(body, &e))

	return e
}

func TestHealthAndVersion(t *testing.T) {
	t.Parallel()

	_, do := newTestApp(t)

	resp, body := do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, body = do(httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.2.3", string(body))
}

func TestSearchStoriesQuery(t *testing.T) {
	t.Parallel()

	stories, do := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, searchURL("/api/1.0/stories/search", map[string]string{
		"q":           "owner:self is:open",
		"max_results": "5",
	}), nil)
	req.Header.Set("X-Request-Id", "req-1")

	resp, body := do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-Id"))

	var output contract.SearchStoriesResponse
	require.NoError(t, json.Unmarshal(body, &output))
	require.Len(t, output.Stories, 1)
	assert.Equal(t, int64(1001), output.Stories[0].ID)
	assert.Equal(t, "next", *output.NextPageToken)

	require.Len(t, stories.calls, 1)
	assert.Equal(t, searchCall{
		filter:     "owner:self is:open",
		identity:   query.Context{Username: "alice"},
		maxResults: 5,
		requestID:  "req-1",
	}, stories.calls[0])
}

func TestSearchStoriesRequestedUser(t *testing.T) {
	t.Parallel()

	stories, do := newTestApp(t)

	resp, body := do(httptest.NewRequest(http.MethodGet, searchURL("/api/1.0/stories/search", map[string]string{
		"q":    "owner:self",
		"user": "bob",
	}), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	require.Len(t, stories.calls, 1)
	assert.Equal(t, query.Context{Username: "bob"}, stories.calls[0].identity)
	assert.Equal(t, resp.Header.Get("X-Request-Id"), stories.calls[0].requestID)
}

func TestSearchStoriesBody(t *testing.T) {
	t.Parallel()

	stories, do := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/1.0/stories/search",
		strings.NewReader(`{"query": "is:open", "max_results": 2, "page_token": "abc"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, body := do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	require.Len(t, stories.calls, 1)
	assert.Equal(t, "is:open", stories.calls[0].filter)
	assert.Equal(t, 2, stories.calls[0].maxResults)
	assert.Equal(t, "abc", stories.calls[0].pageToken)
}

func TestSearchStoriesInvalidRequests(t *testing.T) {
	t.Parallel()

	samples := []struct {
		name    string
		request func() *http.Request
		message string
	}{
		{
			name: "MissingQuery",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/1.0/stories/search", nil)
			},
			message: "Missing value for required parameter 'query'",
		},
		{
			name: "BlankQuery",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet,
					searchURL("/api/1.0/stories/search", map[string]string{"q": "   "}), nil)
			},
			message: "Missing value for required parameter 'query'",
		},
		{
			name: "NegativeMaxResults",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet,
					searchURL("/api/1.0/stories/search", map[string]string{"q": "is:open", "max_results": "-1"}), nil)
			},
			message: "Invalid value -1 for parameter 'max_results' supplied",
		},
		{
			name: "QueryType",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/1.0/stories/search",
					strings.NewReader(`{"query": 5}`))
				req.Header.Set("Content-Type", "application/json")

				return req
			},
			message: "Invalid value 5 for parameter 'query'",
		},
	}

	for _, sample := range samples {
		sample := sample

		t.Run(sample.name, func(t *testing.T) {
			t.Parallel()

			stories, do := newTestApp(t)

			resp, body := do(sample.request())
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			e := decodeError(t, body)
			assert.Equal(t, contract.InvalidParameterValue, e.Code)
			assert.Equal(t, sample.message, e.Message)
			assert.Empty(t, stories.calls)
		})
	}
}

func TestSearchStoriesStoreError(t *testing.T) {
	t.Parallel()

	stories, do := newTestApp(t)
	stories.err = contract.NewError(contract.InvalidParameterValue, "syntax error: has:star is not supported")

	resp, body := do(httptest.NewRequest(http.MethodGet,
		searchURL("/api/1.0/stories/search", map[string]string{"q": "has:star"}), nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	e := decodeError(t, body)
	assert.Equal(t, contract.InvalidParameterValue, e.Code)
	assert.Equal(t, "syntax error: has:star is not supported", e.Message)

	stories.err = contract.NewError(contract.NotImplemented, "error rendering search query")

	resp, _ = do(httptest.NewRequest(http.MethodGet,
		searchURL("/api/1.0/stories/search", map[string]string{"q": "branch:^rel"}), nil))
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestExplainQuery(t *testing.T) {
	t.Parallel()

	stories, do := newTestApp(t)

	resp, body := do(httptest.NewRequest(http.MethodGet,
		searchURL("/api/1.0/query/explain", map[string]string{"q": "limit:5"}), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var output contract.ExplainQueryResponse
	require.NoError(t, json.Unmarshal(body, &output))
	assert.Equal(t, "sqlite", output.Dialect)
	assert.Equal(t, "1 = 1", output.SQL)
	assert.Empty(t, output.Vars)

	require.Len(t, stories.calls, 1)
	assert.Equal(t, "limit:5", stories.calls[0].filter)
	assert.Equal(t, query.Context{Username: "alice"}, stories.calls[0].identity)
}

func TestEndpointNotFound(t *testing.T) {
	t.Parallel()

	_, do := newTestApp(t)

	resp, body := do(httptest.NewRequest(http.MethodGet, "/api/1.0/stories/unknown", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, contract.EndpointNotFound, decodeError(t, body).Code)
}
