package source

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/radar/pkg/domain"
)

// GithubConfig holds trending-page adapter settings
type GithubConfig struct {
	BaseURL   string        // defaults to the public trending page
	Languages []string      // per-language pages, "" means the overall page
	Keywords  []string      // repos must mention one of these in name or description
	PerPage   int           // max repos taken from each language page
	Timeout   time.Duration // per-request bound
}

// Github scrapes the unauthenticated trending-repositories HTML page, one
// sub-fetch per configured language. Individual page failures degrade to
// warnings; the adapter errors only when every page fails.
type Github struct {
	client    *http.Client
	baseURL   string
	languages []string
	keywords  []string
	perPage   int
}

// trendingRepo is one scraped repository entry
type trendingRepo struct {
	name        string
	description string
	url         string
	stars       int
}

// NewGithub creates a trending-repositories adapter
func NewGithub(cfg GithubConfig) *Github {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://github.com/trending"
	}
	if cfg.Languages == nil {
		cfg.Languages = []string{"python", "jupyter-notebook", "rust", ""}
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = []string{"llm", "gpt", "ai", "ml", "model", "agent", "claude", "openai"}
	}
	if cfg.PerPage == 0 {
		cfg.PerPage = 5
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Github{
		client:    newHTTPClient(cfg.Timeout),
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		languages: cfg.Languages,
		keywords:  cfg.Keywords,
		perPage:   cfg.PerPage,
	}
}

// Name identifies the adapter in run reports
func (g *Github) Name() string { return "github" }

// Fetch scrapes every configured language page concurrently and maps matching
// repos to feed items. Relevance grows with star count, capped at 0.95.
func (g *Github) Fetch(ctx context.Context, limit int) ([]domain.FeedItem, error) {
	var (
		mu     sync.Mutex
		items  []domain.FeedItem
		failed int
	)

	now := time.Now().UTC()
	eg, ctx := errgroup.WithContext(ctx)
	for _, lang := range g.languages {
		eg.Go(func() error {
			repos, err := g.fetchPage(ctx, lang)
			if err != nil {
				lgr.Printf("[WARN] github trending page %q failed: %v", lang, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil // page failure is non-fatal for the adapter
			}

			page := make([]domain.FeedItem, 0, g.perPage)
			for _, repo := range repos {
				if !g.relevant(repo) {
					continue
				}
				summary := repo.description
				if summary == "" {
					summary = "Trending AI repository"
				}
				page = append(page, domain.FeedItem{
					SourceType:     domain.SourceGithub,
					SourceName:     "GitHub Trending",
					SourceURL:      repo.url,
					Title:          "[GitHub] " + repo.name,
					SummaryShort:   truncate(summary, maxSummaryLen),
					PublishedAt:    now, // trending means today
					FetchedAt:      now,
					RelevanceScore: math.Min(0.4+float64(repo.stars)/5000*0.5, 0.95),
					Language:       "en",
				})
				if len(page) >= g.perPage {
					break
				}
			}

			mu.Lock()
			items = append(items, page...)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait() // goroutines never return errors, per-page failures counted instead

	if failed == len(g.languages) {
		return nil, fmt.Errorf("all %d trending pages failed", failed)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// relevant checks the repo name and description against the keyword filter
func (g *Github) relevant(repo trendingRepo) bool {
	text := strings.ToLower(repo.name + " " + repo.description)
	for _, kw := range g.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// fetchPage retrieves and parses one trending page
func (g *Github) fetchPage(ctx context.Context, lang string) ([]trendingRepo, error) {
	pageURL := g.baseURL + "?since=daily"
	if lang != "" {
		pageURL = g.baseURL + "/" + lang + "?since=daily"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	addBrowserHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var repos []trendingRepo
	doc.Find("article.Box-row").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Find("h2 a").Attr("href")
		if !ok {
			return
		}
		name := strings.Trim(strings.ReplaceAll(href, " ", ""), "/")
		if name == "" {
			return
		}

		// strip all markup from the scraped description, untrusted input
		description := cleanSummary(sel.Find("p").First().Text())

		stars := 0
		starsText := strings.TrimSpace(sel.Find(`a[href$="/stargazers"]`).First().Text())
		if starsText != "" {
			if n, perr := strconv.Atoi(strings.ReplaceAll(starsText, ",", "")); perr == nil {
				stars = n
			}
		}

		repos = append(repos, trendingRepo{
			name:        name,
			description: description,
			url:         "https://github.com/" + name,
			stars:       stars,
		})
	})

	return repos, nil
}
