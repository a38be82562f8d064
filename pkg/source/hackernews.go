package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/radar/pkg/domain"
)

// HackerNewsConfig holds discussion-site adapter settings
type HackerNewsConfig struct {
	APIURL     string        // Algolia search endpoint, defaults to the public one
	QueryTerms []string      // OR-joined search terms, first three are used
	MaxResults int           // default fetch size when limit is 0
	Timeout    time.Duration // per-request bound
}

// HackerNews fetches stories from the Algolia search API, queried by a
// keyword OR-list and sorted by relevance/points upstream.
type HackerNews struct {
	client     *http.Client
	apiURL     string
	queryTerms []string
	maxResults int
}

// hnHit is one story in the Algolia response
type hnHit struct {
	ObjectID  string `json:"objectID"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	StoryText string `json:"story_text"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at"`
}

// NewHackerNews creates a discussion-site adapter
func NewHackerNews(cfg HackerNewsConfig) *HackerNews {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://hn.algolia.com/api/v1/search"
	}
	if len(cfg.QueryTerms) == 0 {
		cfg.QueryTerms = []string{"openai", "anthropic", "llm"}
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 15
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HackerNews{
		client:     newHTTPClient(cfg.Timeout),
		apiURL:     cfg.APIURL,
		queryTerms: cfg.QueryTerms,
		maxResults: cfg.MaxResults,
	}
}

// Name identifies the adapter in run reports
func (h *HackerNews) Name() string { return "hackernews" }

// Fetch queries the search API and maps stories to feed items. Text-only
// posts without a URL are skipped. Relevance grows with story points,
// capped at 1.0.
func (h *HackerNews) Fetch(ctx context.Context, limit int) ([]domain.FeedItem, error) {
	if limit <= 0 {
		limit = h.maxResults
	}

	terms := h.queryTerms
	if len(terms) > 3 {
		terms = terms[:3]
	}
	params := url.Values{
		"query":                {strings.Join(terms, " OR ")},
		"tags":                 {"story"},
		"hitsPerPage":          {strconv.Itoa(limit)},
		"attributesToRetrieve": {"objectID,title,url,story_text,points,created_at"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.apiURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hackernews: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hackernews api status %d", resp.StatusCode)
	}

	var data struct {
		Hits []hnHit `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode hackernews response: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.FeedItem, 0, len(data.Hits))
	for _, hit := range data.Hits {
		if hit.URL == "" || hit.Title == "" {
			continue // text-only post or malformed hit, skip
		}

		summary := fmt.Sprintf("%d points on Hacker News", hit.Points)
		if hit.StoryText != "" {
			summary = cleanSummary(hit.StoryText)
		}

		published := now
		if ts, perr := time.Parse(time.RFC3339, hit.CreatedAt); perr == nil {
			published = ts.UTC()
		}

		items = append(items, domain.FeedItem{
			SourceType:     domain.SourceHackerNews,
			SourceName:     "Hacker News",
			SourceURL:      hit.URL,
			Title:          hit.Title,
			SummaryShort:   summary,
			PublishedAt:    published,
			FetchedAt:      now,
			RelevanceScore: math.Min(0.5+float64(hit.Points)/1000*0.5, 1.0),
			Language:       "en",
		})
	}

	return items, nil
}
