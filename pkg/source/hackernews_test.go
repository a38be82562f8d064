package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/radar/pkg/domain"
)

const hnResponse = `{
  "hits": [
    {
      "objectID": "1001",
      "title": "Claude beats GPT on coding benchmark",
      "url": "https://example.com/bench",
      "story_text": "",
      "points": 500,
      "created_at": "2025-02-01T08:30:00Z"
    },
    {
      "objectID": "1002",
      "title": "Show HN: my LLM wrapper",
      "url": "https://example.com/wrapper",
      "story_text": "<p>A thin wrapper with &amp; streaming</p>",
      "points": 2500,
      "created_at": "2025-02-02T10:00:00Z"
    },
    {
      "objectID": "1003",
      "title": "Ask HN: text-only post without url",
      "url": "",
      "story_text": "should be skipped",
      "points": 10,
      "created_at": "2025-02-01T09:00:00Z"
    }
  ]
}`

func TestHackerNews_Fetch(t *testing.T) {
	t.Run("maps hits to feed items", func(t *testing.T) {
		var gotQuery string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, hnResponse)
		}))
		defer ts.Close()

		h := NewHackerNews(HackerNewsConfig{
			APIURL:     ts.URL,
			QueryTerms: []string{"openai", "anthropic", "llm", "extra-ignored"},
			Timeout:    time.Second,
		})
		items, err := h.Fetch(context.Background(), 20)
		require.NoError(t, err)
		require.Len(t, items, 2, "url-less hit skipped")

		first := items[0]
		assert.Equal(t, domain.SourceHackerNews, first.SourceType)
		assert.Equal(t, "Hacker News", first.SourceName)
		assert.Equal(t, "https://example.com/bench", first.SourceURL)
		assert.Equal(t, "500 points on Hacker News", first.SummaryShort, "empty story text falls back to points")
		assert.InDelta(t, 0.75, first.RelevanceScore, 0.0001) // 0.5 + 500/1000*0.5
		assert.Equal(t, time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC), first.PublishedAt)

		second := items[1]
		assert.Equal(t, "A thin wrapper with & streaming", second.SummaryShort, "story text sanitized")
		assert.InDelta(t, 1.0, second.RelevanceScore, 0.0001, "score capped at 1.0")

		// only the first three query terms are used
		assert.Contains(t, gotQuery, "query=openai+OR+anthropic+OR+llm")
		assert.NotContains(t, gotQuery, "extra-ignored")
		assert.Contains(t, gotQuery, "tags=story")
		assert.Contains(t, gotQuery, "hitsPerPage=20")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer ts.Close()

		h := NewHackerNews(HackerNewsConfig{APIURL: ts.URL, Timeout: time.Second})
		_, err := h.Fetch(context.Background(), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "{broken")
		}))
		defer ts.Close()

		h := NewHackerNews(HackerNewsConfig{APIURL: ts.URL, Timeout: time.Second})
		_, err := h.Fetch(context.Background(), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode hackernews response")
	})

	t.Run("bad created_at falls back to fetch time", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"hits":[{"objectID":"1","title":"t","url":"https://example.com/x","points":1,"created_at":"garbage"}]}`)
		}))
		defer ts.Close()

		h := NewHackerNews(HackerNewsConfig{APIURL: ts.URL, Timeout: time.Second})
		before := time.Now().UTC()
		items, err := h.Fetch(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].PublishedAt.Before(before))
	})
}

func TestHackerNews_Name(t *testing.T) {
	assert.Equal(t, "hackernews", NewHackerNews(HackerNewsConfig{}).Name())
}
