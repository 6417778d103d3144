package anilist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func decodeIDs(t *testing.T, req gqlRequest) []int {
	t.Helper()
	rawIDs, ok := req.Variables["ids"].([]any)
	require.True(t, ok, "ids variable missing")
	ids := make([]int, 0, len(rawIDs))
	for _, v := range rawIDs {
		ids = append(ids, int(v.(float64)))
	}
	return ids
}

// statusServer answers every status query with status "RELEASING" for
// each requested id, unless failOn matches the request ordinal.
func statusServer(t *testing.T, calls *atomic.Int64, failOn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == failOn {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}

		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var media []map[string]any
		for _, id := range decodeIDs(t, req) {
			media = append(media, map[string]any{"id": id, "status": "RELEASING"})
		}
		resp := map[string]any{
			"data": map[string]any{
				"Page": map[string]any{"media": media},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(url string) *Client {
	c := NewClient()
	c.BaseURL = url
	return c
}

func TestFetchStatusesEmptyInputMakesNoCall(t *testing.T) {
	var calls atomic.Int64
	srv := statusServer(t, &calls, 0)
	defer srv.Close()

	got := newTestClient(srv.URL).FetchStatuses(context.Background(), nil)
	assert.Empty(t, got)
	assert.Equal(t, int64(0), calls.Load())
}

func TestFetchStatusesBatchesOfFifty(t *testing.T) {
	var calls atomic.Int64
	srv := statusServer(t, &calls, 0)
	defer srv.Close()

	ids := make([]int, 120)
	for i := range ids {
		ids[i] = i + 1
	}

	got := newTestClient(srv.URL).FetchStatuses(context.Background(), ids)

	assert.Equal(t, int64(3), calls.Load(), "ceil(120/50) requests")
	assert.Len(t, got, 120)
	assert.Equal(t, "RELEASING", got[1])
	assert.Equal(t, "RELEASING", got[120])
}

func TestFetchStatusesFailedBatchIsIsolated(t *testing.T) {
	var calls atomic.Int64
	srv := statusServer(t, &calls, 2) // second batch fails
	defer srv.Close()

	ids := make([]int, 120)
	for i := range ids {
		ids[i] = i + 1
	}

	got := newTestClient(srv.URL).FetchStatuses(context.Background(), ids)

	assert.Equal(t, int64(3), calls.Load(), "remaining batches still issued")
	assert.Len(t, got, 70, "first and third batch results kept")
	assert.Equal(t, "RELEASING", got[1])
	assert.NotContains(t, got, 51)
	assert.Equal(t, "RELEASING", got[101])
}

func TestFetchStatusesServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	got := newTestClient(url).FetchStatuses(context.Background(), []int{1, 2, 3})
	assert.Empty(t, got)
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "frieren", req.Variables["search"])

		fmt.Fprint(w, `{"data": {"Page": {"media": [{
			"id": 154587,
			"title": {"romaji": "Sousou no Frieren", "english": "Frieren"},
			"coverImage": {"large": "l.png"},
			"siteUrl": "https://anilist.co/anime/154587",
			"status": "FINISHED",
			"airingSchedule": {"edges": [{"node": {"airingAt": 1700000000, "episode": 28}}]}
		}]}}}`)
	}))
	defer srv.Close()

	media, err := newTestClient(srv.URL).Search(context.Background(), "frieren")
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, 154587, media[0].ID)
	assert.Equal(t, "Frieren", media[0].Title.English)
	assert.Equal(t, "FINISHED", media[0].Status)
	require.Len(t, media[0].AiringSchedule.Edges, 1)
	assert.Equal(t, 28, media[0].AiringSchedule.Edges[0].Node.Episode)
}

func TestFetchByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(1), req.Variables["id"])

		fmt.Fprint(w, `{"data": {"Media": {"id": 1, "title": {"romaji": "Cowboy Bebop"}, "status": "FINISHED"}}}`)
	}))
	defer srv.Close()

	media, err := newTestClient(srv.URL).FetchByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, media.ID)
	assert.Equal(t, "Cowboy Bebop", media.Title.Romaji)
}

func TestFetchByIDUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchByID(context.Background(), 1)
	assert.Error(t, err)
}

func TestFetchByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"Media": null}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchByID(context.Background(), 99)
	assert.Error(t, err)
}
