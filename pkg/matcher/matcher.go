// Package matcher scores feed items against user-defined problem fields using
// token-overlap coverage. Both sides are treated strictly as inert text:
// tokenized, never rendered or interpreted.
package matcher

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/umputun/radar/pkg/domain"
)

// MinConfidence is the minimum coverage required to produce a match
const MinConfidence = 0.3

// maxReasonLen caps the human-readable match reason, relied on by consumers
const maxReasonLen = 200

// maxReasonTerms limits how many matched terms the reason lists
const maxReasonTerms = 5

var nonWord = regexp.MustCompile(`[^\w\s]`)

// tokenize lowercases the text, replaces non-word characters with spaces,
// splits on whitespace and drops tokens of length 2 or less
func tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Score rates a single feed item against a single problem field. It returns
// nil when there is no match: no shared tokens, or coverage below
// MinConfidence. Coverage is the share of distinct problem tokens found in
// the item text, rounded to two decimals and capped at 1.0.
func Score(problem domain.ProblemField, item domain.FeedItem) *domain.MatchResult {
	problemTokens := make(map[string]struct{})
	for _, tok := range tokenize(problem.Title) {
		problemTokens[tok] = struct{}{}
	}
	if problem.Description != nil {
		for _, tok := range tokenize(*problem.Description) {
			problemTokens[tok] = struct{}{}
		}
	}

	itemText := item.Title + " " + item.SummaryShort
	if item.SummaryPlain != nil {
		itemText += " " + *item.SummaryPlain
	}

	// distinct matched tokens in item encounter order
	var matched []string
	seen := make(map[string]struct{})
	for _, tok := range tokenize(itemText) {
		if _, ok := problemTokens[tok]; !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		matched = append(matched, tok)
	}

	if len(matched) == 0 {
		return nil
	}

	p := len(problemTokens)
	if p < 1 {
		p = 1
	}
	coverage := float64(len(matched)) / float64(p)
	confidence := math.Min(math.Round(coverage*100)/100, 1.0)
	if confidence < MinConfidence {
		return nil
	}

	topTerms := matched
	if len(topTerms) > maxReasonTerms {
		topTerms = topTerms[:maxReasonTerms]
	}
	reason := fmt.Sprintf("matching terms: %s", strings.Join(topTerms, ", "))
	if len(reason) > maxReasonLen {
		reason = reason[:maxReasonLen]
	}

	return &domain.MatchResult{
		ProblemFieldID: problem.ID,
		FeedItemID:     item.ID,
		Confidence:     confidence,
		MatchReason:    reason,
		MatchedTerms:   topTerms,
	}
}

// MatchItem scores one feed item against all given problem fields, skipping
// inactive ones. Survivors are sorted by confidence descending (stable).
func MatchItem(problems []domain.ProblemField, item domain.FeedItem) []domain.MatchResult {
	var results []domain.MatchResult
	for _, problem := range problems {
		if !problem.Active {
			continue
		}
		if m := Score(problem, item); m != nil {
			results = append(results, *m)
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	return results
}

// MatchBatch flat-maps MatchItem over every item. The same problem may match
// many items; uniqueness per (problem, item) pair is enforced by the store.
func MatchBatch(problems []domain.ProblemField, items []domain.FeedItem) []domain.MatchResult {
	var all []domain.MatchResult
	for _, item := range items {
		all = append(all, MatchItem(problems, item)...)
	}
	return all
}
