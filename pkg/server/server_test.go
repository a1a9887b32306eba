package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screengreen/suggestive-service/pkg/config"
	"github.com/screengreen/suggestive-service/pkg/server"
	"github.com/screengreen/suggestive-service/pkg/suggest"
)

func newFittedSuggester(t *testing.T) *suggest.Suggester {
	t.Helper()
	s := suggest.NewSuggester()
	err := s.Fit(map[string]float64{
		"hello world": 10.0,
		"hello":       7.0,
		"help":        5.0,
		"helmet":      3.0,
		"say hello":   4.0,
		"apple pie":   2.0,
		"asus laptop": 6.0,
	})
	require.NoError(t, err)
	return s
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := server.NewServer(newFittedSuggester(t), config.DefaultConfig())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getSuggest(t *testing.T, ts *httptest.Server, rawQuery string) (*http.Response, server.SuggestResponse) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + "/suggest?" + rawQuery)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body server.SuggestResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp, body
}

func TestSuggestEndpoint(t *testing.T) {
	ts := newTestServer(t)

	testCases := []struct {
		query     string
		k         int
		wantQuery string
	}{
		{"", 10, ""},
		{"HeL", 3, "hel"},
		{"   ;;;   ", 5, ""},
		{"apple, ", 10, "apple"},
		{"asuS ;;;;", 100, "asus"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("query=%q k=%d", tc.query, tc.k), func(t *testing.T) {
			params := url.Values{}
			params.Set("query", tc.query)
			params.Set("k", fmt.Sprint(tc.k))

			resp, body := getSuggest(t, ts, params.Encode())
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.wantQuery, body.Query)
			assert.LessOrEqual(t, len(body.Suggestions), tc.k)
			assert.Equal(t, len(body.Suggestions), body.Count)
		})
	}
}

func TestSuggestRanking(t *testing.T) {
	ts := newTestServer(t)

	resp, body := getSuggest(t, ts, "query=hel&k=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Descending by weight: hello world (10) > hello (7) > help (5).
	assert.Equal(t, []string{"hello world", "hello", "help"}, body.Suggestions)

	seen := map[string]bool{}
	for _, s := range body.Suggestions {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestSuggestBackwardCompletion(t *testing.T) {
	ts := newTestServer(t)

	_, body := getSuggest(t, ts, "query=hello&k=10")
	// "say hello" ends with the query and must surface through the
	// reversed trie.
	assert.Contains(t, body.Suggestions, "say hello")
	assert.Contains(t, body.Suggestions, "hello world")
}

func TestSuggestInvalidK(t *testing.T) {
	ts := newTestServer(t)

	for _, rawK := range []string{"-1", "abc", "1.5"} {
		resp, _ := getSuggest(t, ts, "query=hel&k="+url.QueryEscape(rawK))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "k=%s", rawK)
	}
}

func TestSuggestZeroK(t *testing.T) {
	ts := newTestServer(t)

	resp, body := getSuggest(t, ts, "query=hel&k=0")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Suggestions)
}

func TestSuggestDeepWidensRecall(t *testing.T) {
	ts := newTestServer(t)

	// "helx" has no continuation; deep mode retries with the last
	// character dropped.
	_, body := getSuggest(t, ts, "query=helx&k=5")
	assert.Empty(t, body.Suggestions)

	_, body = getSuggest(t, ts, "query=helx&k=5&deep=true")
	assert.Contains(t, body.Suggestions, "hello world")
}

func TestSuggestDefaultK(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.DefaultLimit = 2
	srv := server.NewServer(newFittedSuggester(t), cfg)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/suggest?query=hel")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body server.SuggestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Suggestions, 2)
}

func TestSuggestQueryTooLong(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxQueryLen = 5
	srv := server.NewServer(newFittedSuggester(t), cfg)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/suggest?query=waytoolongquery")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndStats(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = ts.Client().Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	// Both tries hold a copy of the 7 fitted queries.
	assert.Equal(t, 14, stats["storedQueries"])
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestSuggestCachedResponsesMatch(t *testing.T) {
	ts := newTestServer(t)

	_, first := getSuggest(t, ts, "query=hel&k=3")
	_, second := getSuggest(t, ts, "query=hel&k=3")
	assert.Equal(t, first.Suggestions, second.Suggestions)
}
