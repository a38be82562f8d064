package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/radar/pkg/domain"
)

// arxivRelevance is the fixed baseline for academic papers
const arxivRelevance = 0.7

// ArxivConfig holds arXiv adapter settings
type ArxivConfig struct {
	APIURL     string        // defaults to the public export API
	Categories []string      // e.g. cs.AI, cs.LG
	MaxResults int           // default fetch size when limit is 0
	Timeout    time.Duration // per-request bound
}

// Arxiv fetches recent papers from the arXiv search API, an Atom feed
// queried by category codes and sorted by submission date.
type Arxiv struct {
	client     *http.Client
	apiURL     string
	categories []string
	maxResults int
}

// NewArxiv creates an arXiv adapter
func NewArxiv(cfg ArxivConfig) *Arxiv {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://export.arxiv.org/api/query"
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV"}
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 20
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Arxiv{
		client:     newHTTPClient(cfg.Timeout),
		apiURL:     cfg.APIURL,
		categories: cfg.Categories,
		maxResults: cfg.MaxResults,
	}
}

// Name identifies the adapter in run reports
func (a *Arxiv) Name() string { return "arxiv" }

// Fetch queries the API and maps entries to feed items. Entries missing a
// title or link are skipped, total fetch or parse failure is returned.
func (a *Arxiv) Fetch(ctx context.Context, limit int) ([]domain.FeedItem, error) {
	if limit <= 0 {
		limit = a.maxResults
	}

	terms := make([]string, len(a.categories))
	for i, c := range a.categories {
		terms[i] = "cat:" + c
	}
	params := url.Values{
		"search_query": {strings.Join(terms, " OR ")},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
		"max_results":  {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv api status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse arxiv atom: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.FeedItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue // malformed entry, skip
		}
		published := now
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		}
		items = append(items, domain.FeedItem{
			SourceType:     domain.SourceArxiv,
			SourceName:     "ArXiv",
			SourceURL:      entry.Link,
			Title:          collapseSpaces(entry.Title),
			SummaryShort:   cleanSummary(entry.Description),
			PublishedAt:    published,
			FetchedAt:      now,
			RelevanceScore: arxivRelevance,
			Language:       "en",
		})
	}

	return items, nil
}
