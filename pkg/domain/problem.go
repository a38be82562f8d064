package domain

import "time"

// problem field priorities
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// ProblemField is a user's standing query describing a business challenge.
// It is owned and mutated by the problem-management API; the pipeline only
// reads active fields.
type ProblemField struct {
	ID          int64
	UserID      string
	Title       string
	Description *string
	Industry    string
	Priority    string // HIGH, MEDIUM or LOW
	Active      bool
	CreatedAt   time.Time
}

// ProblemMatch associates a problem field with a feed item
type ProblemMatch struct {
	ID             int64
	ProblemFieldID int64
	FeedItemID     int64
	Confidence     float64
	MatchMethod    string // only "keyword" is produced here, "semantic" reserved
	MatchReason    string // human-readable, at most 200 chars
	UserFeedback   *string
	CreatedAt      time.Time
}

// MatchResult is a single scored problem/item pair produced by the matcher
type MatchResult struct {
	ProblemFieldID int64
	FeedItemID     int64
	Confidence     float64
	MatchReason    string
	MatchedTerms   []string
}
