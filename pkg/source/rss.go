package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/radar/pkg/domain"
)

// Feed describes one RSS/Atom endpoint polled by the RSS adapter
type Feed struct {
	Name   string            `yaml:"name"`
	URL    string            `yaml:"url"`
	Type   domain.SourceType `yaml:"type"`
	Weight float64           `yaml:"weight"` // baseline relevance for items from this feed
}

// RSSConfig holds RSS adapter settings
type RSSConfig struct {
	Name    string        // adapter name in run reports, e.g. "release-notes"
	Feeds   []Feed        // endpoints polled concurrently
	Timeout time.Duration // per-feed request bound
}

// RSS polls a fixed list of RSS/Atom feeds concurrently. Per-feed failures
// are swallowed with a warning; the adapter errors only when every feed
// fails. Used for vendor release notes and VC/industry commentary sets.
type RSS struct {
	name    string
	feeds   []Feed
	timeout time.Duration
}

// NewRSS creates an RSS adapter over the given feed set
func NewRSS(cfg RSSConfig) *RSS {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &RSS{name: cfg.Name, feeds: cfg.Feeds, timeout: cfg.Timeout}
}

// Name identifies the adapter in run reports
func (r *RSS) Name() string { return r.name }

// Fetch polls every configured feed and maps entries to feed items. Entries
// missing a title or link are skipped.
func (r *RSS) Fetch(ctx context.Context, limit int) ([]domain.FeedItem, error) {
	if len(r.feeds) == 0 {
		return nil, nil
	}

	var (
		mu     sync.Mutex
		items  []domain.FeedItem
		failed int
	)

	now := time.Now().UTC()
	eg, ctx := errgroup.WithContext(ctx)
	for _, f := range r.feeds {
		eg.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			parsed, err := gofeed.NewParser().ParseURLWithContext(f.URL, fetchCtx)
			if err != nil {
				lgr.Printf("[WARN] %s: feed %s failed: %v", r.name, f.URL, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil // single feed failure is non-fatal for the adapter
			}

			converted := make([]domain.FeedItem, 0, len(parsed.Items))
			for _, entry := range parsed.Items {
				link := entry.Link
				if link == "" {
					link = entry.GUID
				}
				if entry.Title == "" || link == "" {
					continue // malformed entry, skip
				}

				published := now
				switch {
				case entry.PublishedParsed != nil:
					published = entry.PublishedParsed.UTC()
				case entry.UpdatedParsed != nil:
					published = entry.UpdatedParsed.UTC()
				}

				converted = append(converted, domain.FeedItem{
					SourceType:     f.Type,
					SourceName:     f.Name,
					SourceURL:      link,
					Title:          collapseSpaces(entry.Title),
					SummaryShort:   cleanSummary(entry.Description),
					PublishedAt:    published,
					FetchedAt:      now,
					RelevanceScore: f.Weight,
					Language:       "en",
				})
			}

			mu.Lock()
			items = append(items, converted...)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait() // goroutines never return errors, per-feed failures counted instead

	if failed == len(r.feeds) {
		return nil, fmt.Errorf("%s: all %d feeds failed", r.name, failed)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
