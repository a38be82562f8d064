// Package tagger classifies free text against the capability taxonomy using
// weighted keyword rules. Matching is a literal lowercase substring check
// without word boundaries; a term appearing inside a longer word still counts.
// This is a known precision trade-off kept on purpose: downstream consumers
// depend on the existing confidence calibration.
package tagger

import (
	"math"
	"sort"
	"strings"

	"github.com/umputun/radar/pkg/domain"
)

// MinConfidence is the minimum signal required to surface a tag
const MinConfidence = 0.3

// MaxTags caps the number of tags returned per item
const MaxTags = 3

// Tagger scores text against an immutable set of capability entries.
// Safe for concurrent use, it never mutates its taxonomy.
type Tagger struct {
	entries []domain.CapabilityEntry
}

// New creates a tagger over the given taxonomy, keeping active entries only
func New(entries []domain.CapabilityEntry) *Tagger {
	active := make([]domain.CapabilityEntry, 0, len(entries))
	for _, e := range entries {
		if e.Active {
			active = append(active, e)
		}
	}
	return &Tagger{entries: active}
}

// Tag scores the concatenated title and summary against every taxonomy entry.
// Confidence per entry is the sum of matched rule weights, rounded to two
// decimals and capped at 1.0. Entries below MinConfidence are dropped, the
// rest are sorted by confidence descending (stable, taxonomy order preserved
// on ties) and trimmed to MaxTags.
func (t *Tagger) Tag(title, summary string) []domain.TagResult {
	text := strings.ToLower(title + " " + summary)

	var results []domain.TagResult
	for _, entry := range t.entries {
		var matched []string
		sum := 0.0
		for _, rule := range entry.Keywords {
			if strings.Contains(text, strings.ToLower(rule.Term)) {
				matched = append(matched, rule.Term)
				sum += rule.Weight
			}
		}
		if len(matched) == 0 {
			continue
		}

		confidence := math.Min(round2(sum), 1.0)
		if confidence < MinConfidence {
			continue
		}

		results = append(results, domain.TagResult{
			Slug:         entry.Slug,
			Confidence:   confidence,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	if len(results) > MaxTags {
		results = results[:MaxTags]
	}
	return results
}

// TagBatch applies Tag independently to each item, returning a parallel slice
func (t *Tagger) TagBatch(items []domain.FeedItem) [][]domain.TagResult {
	out := make([][]domain.TagResult, len(items))
	for i, item := range items {
		out[i] = t.Tag(item.Title, item.SummaryShort)
	}
	return out
}

// round2 rounds half away from zero to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
