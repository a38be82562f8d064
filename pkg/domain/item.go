package domain

import "time"

// SourceType identifies the kind of upstream source an item came from
type SourceType string

// known source types
const (
	SourceArxiv        SourceType = "arxiv"
	SourceGithub       SourceType = "github"
	SourceHackerNews   SourceType = "hackernews"
	SourceReleaseNotes SourceType = "release_notes"
	SourceVCNews       SourceType = "vc_news"
	SourceIndustryBlog SourceType = "industry_blog"
)

// FeedItem represents a single normalized piece of ingested content.
// SourceURL is the global deduplication key: the store never holds two rows
// with the same URL, regardless of which adapter produced them.
type FeedItem struct {
	ID             int64
	SourceType     SourceType
	SourceName     string
	SourceURL      string
	Title          string
	SummaryShort   string  // markup-free, at most 280 chars
	SummaryPlain   *string // reserved for future enrichment, nil until then
	PublishedAt    time.Time
	FetchedAt      time.Time
	RelevanceScore float64 // adapter-assigned baseline in [0,1]
	Language       string
	Archived       bool
	CreatedAt      time.Time
}

// FeedItemTag associates a feed item with a capability taxonomy entry
type FeedItemTag struct {
	ID           int64
	FeedItemID   int64
	CapabilityID int64
	Confidence   float64
	AssignedBy   string // "system" or "human"
	CreatedAt    time.Time
}

// TagResult is a single capability classification produced by the tagger
type TagResult struct {
	Slug         string
	Confidence   float64
	MatchedTerms []string
}
