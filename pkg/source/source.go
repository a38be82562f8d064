// Package source contains the feed source adapters. Each adapter fetches raw
// content from one upstream and maps it to the common FeedItem shape.
// Adapters skip malformed entries and fail only on total fetch failure; a
// single adapter's error never blocks the others.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/umputun/radar/pkg/domain"
)

// Adapter fetches records from one upstream source. Fetch performs bounded
// network I/O and returns zero or more partially populated feed items; limit
// caps the number of records where the upstream supports it (0 = adapter
// default).
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, limit int) ([]domain.FeedItem, error)
}

// defaultUserAgent identifies the aggregator to upstream services
const defaultUserAgent = "radar/1.0 (+https://github.com/umputun/radar)"

// newHTTPClient builds the shared client shape used by all adapters
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
