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

const arxivAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query Results</title>
  <entry>
    <id>http://arxiv.org/abs/2501.00001v1</id>
    <title>Scaling   Laws for
      Sparse Models</title>
    <link href="http://arxiv.org/abs/2501.00001v1" rel="alternate" type="text/html"/>
    <summary>We study &lt;b&gt;scaling&lt;/b&gt; behaviour of sparse mixture models.</summary>
    <published>2025-01-15T12:00:00Z</published>
    <updated>2025-01-15T12:00:00Z</updated>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2501.00002v1</id>
    <title></title>
    <link href="http://arxiv.org/abs/2501.00002v1" rel="alternate" type="text/html"/>
    <summary>entry without title must be skipped</summary>
    <published>2025-01-14T12:00:00Z</published>
    <updated>2025-01-14T12:00:00Z</updated>
  </entry>
</feed>`

func TestArxiv_Fetch(t *testing.T) {
	t.Run("maps atom entries to feed items", func(t *testing.T) {
		var gotQuery string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/atom+xml")
			fmt.Fprint(w, arxivAtom)
		}))
		defer ts.Close()

		a := NewArxiv(ArxivConfig{APIURL: ts.URL, Categories: []string{"cs.AI", "cs.CL"}, Timeout: time.Second})
		items, err := a.Fetch(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, items, 1, "titleless entry skipped")

		item := items[0]
		assert.Equal(t, domain.SourceArxiv, item.SourceType)
		assert.Equal(t, "ArXiv", item.SourceName)
		assert.Equal(t, "http://arxiv.org/abs/2501.00001v1", item.SourceURL)
		assert.Equal(t, "Scaling Laws for Sparse Models", item.Title, "title whitespace collapsed")
		assert.Equal(t, "We study scaling behaviour of sparse mixture models.", item.SummaryShort, "markup stripped")
		assert.Equal(t, time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), item.PublishedAt)
		assert.InDelta(t, 0.7, item.RelevanceScore, 0.0001)
		assert.Equal(t, "en", item.Language)

		assert.Contains(t, gotQuery, "cat%3Acs.AI+OR+cat%3Acs.CL")
		assert.Contains(t, gotQuery, "sortBy=submittedDate")
		assert.Contains(t, gotQuery, "max_results=10")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		a := NewArxiv(ArxivConfig{APIURL: ts.URL, Timeout: time.Second})
		_, err := a.Fetch(context.Background(), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "not xml at all")
		}))
		defer ts.Close()

		a := NewArxiv(ArxivConfig{APIURL: ts.URL, Timeout: time.Second})
		_, err := a.Fetch(context.Background(), 5)
		require.Error(t, err)
	})

	t.Run("zero limit falls back to configured max", func(t *testing.T) {
		var gotQuery string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, arxivAtom)
		}))
		defer ts.Close()

		a := NewArxiv(ArxivConfig{APIURL: ts.URL, MaxResults: 7, Timeout: time.Second})
		_, err := a.Fetch(context.Background(), 0)
		require.NoError(t, err)
		assert.Contains(t, gotQuery, "max_results=7")
	})
}

func TestArxiv_Name(t *testing.T) {
	assert.Equal(t, "arxiv", NewArxiv(ArxivConfig{}).Name())
}
