package matcher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/radar/pkg/domain"
)

func strPtr(s string) *string { return &s }

func TestTokenize(t *testing.T) {
	t.Run("lowercase split and short token drop", func(t *testing.T) {
		tokens := tokenize("Reduce API Costs for LLM-based Support!")
		assert.Equal(t, []string{"reduce", "api", "costs", "for", "llm", "based", "support"}, tokens)
	})

	t.Run("punctuation becomes separator", func(t *testing.T) {
		tokens := tokenize("fine-tuning, prompt_caching: v2.0")
		// underscore is a word character and survives
		assert.Equal(t, []string{"fine", "tuning", "prompt_caching"}, tokens)
	})

	t.Run("short and empty tokens dropped", func(t *testing.T) {
		assert.Empty(t, tokenize("a an of it"))
		assert.Empty(t, tokenize(""))
		assert.Empty(t, tokenize("!!! ??? .."))
	})
}

func TestScore(t *testing.T) {
	t.Run("no shared vocabulary yields nil", func(t *testing.T) {
		problem := domain.ProblemField{
			ID:          1,
			Title:       "Kundensupport Antwortzeiten verbessern",
			Description: strPtr("Unsere Hotline beantwortet Tickets zu langsam"),
			Active:      true,
		}
		item := domain.FeedItem{
			ID:           10,
			Title:        "New vision encoder beats benchmarks",
			SummaryShort: "A novel image backbone improves OCR accuracy",
		}
		assert.Nil(t, Score(problem, item))
	})

	t.Run("coverage is share of problem tokens", func(t *testing.T) {
		problem := domain.ProblemField{
			ID:     1,
			Title:  "reduce support ticket volume", // 4 tokens
			Active: true,
		}
		item := domain.FeedItem{
			ID:           10,
			Title:        "How LLM agents reduce support costs",
			SummaryShort: "",
		}
		m := Score(problem, item)
		require.NotNil(t, m)
		// matched: reduce, support => 2/4
		assert.InDelta(t, 0.5, m.Confidence, 0.0001)
		assert.Equal(t, []string{"reduce", "support"}, m.MatchedTerms)
		assert.Equal(t, int64(1), m.ProblemFieldID)
		assert.Equal(t, int64(10), m.FeedItemID)
	})

	t.Run("below threshold yields nil", func(t *testing.T) {
		problem := domain.ProblemField{
			ID:     1,
			Title:  "reduce support ticket volume latency costs errors retries", // 8 tokens
			Active: true,
		}
		item := domain.FeedItem{ID: 10, Title: "support matters", SummaryShort: ""}
		// 1/8 = 0.13 < 0.3
		assert.Nil(t, Score(problem, item))
	})

	t.Run("description tokens count toward problem set", func(t *testing.T) {
		problem := domain.ProblemField{
			ID:          1,
			Title:       "chatbot quality",
			Description: strPtr("hallucination rate too high"),
			Active:      true,
		}
		item := domain.FeedItem{
			ID:           10,
			Title:        "Reducing hallucination rate in production chatbot deployments",
			SummaryShort: "quality evaluation with high precision",
		}
		m := Score(problem, item)
		require.NotNil(t, m)
		// problem tokens: chatbot quality hallucination rate too high (6)
		// matched: hallucination rate chatbot quality high (5) => 5/6 = 0.83
		assert.InDelta(t, 0.83, m.Confidence, 0.0001)
	})

	t.Run("matched terms keep item encounter order distinct", func(t *testing.T) {
		problem := domain.ProblemField{ID: 1, Title: "alpha beta gamma", Active: true}
		item := domain.FeedItem{
			ID:           10,
			Title:        "gamma first then alpha",
			SummaryShort: "alpha repeats then beta",
		}
		m := Score(problem, item)
		require.NotNil(t, m)
		assert.Equal(t, []string{"gamma", "alpha", "beta"}, m.MatchedTerms)
	})

	t.Run("reason lists at most five terms and stays under cap", func(t *testing.T) {
		words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"}
		problem := domain.ProblemField{ID: 1, Title: strings.Join(words, " "), Active: true}
		item := domain.FeedItem{ID: 10, Title: strings.Join(words, " "), SummaryShort: ""}
		m := Score(problem, item)
		require.NotNil(t, m)
		assert.Equal(t, "matching terms: alpha, bravo, charlie, delta, echo", m.MatchReason)
		assert.LessOrEqual(t, len(m.MatchReason), 200)
	})

	t.Run("reason truncated at 200 characters", func(t *testing.T) {
		long := make([]string, 5)
		for i := range long {
			long[i] = strings.Repeat(fmt.Sprintf("verylongterm%d", i), 5)
		}
		problem := domain.ProblemField{ID: 1, Title: strings.Join(long, " "), Active: true}
		item := domain.FeedItem{ID: 10, Title: strings.Join(long, " "), SummaryShort: ""}
		m := Score(problem, item)
		require.NotNil(t, m)
		assert.Len(t, m.MatchReason, 200)
		assert.True(t, strings.HasPrefix(m.MatchReason, "matching terms: "))
	})

	t.Run("summary plain included in item text", func(t *testing.T) {
		problem := domain.ProblemField{ID: 1, Title: "latency budget", Active: true}
		item := domain.FeedItem{
			ID:           10,
			Title:        "infra news",
			SummaryShort: "",
			SummaryPlain: strPtr("p99 latency budget regressions explained"),
		}
		m := Score(problem, item)
		require.NotNil(t, m)
		assert.InDelta(t, 1.0, m.Confidence, 0.0001)
	})

	t.Run("empty problem text yields nil", func(t *testing.T) {
		problem := domain.ProblemField{ID: 1, Title: "", Active: true}
		item := domain.FeedItem{ID: 10, Title: "anything at all", SummaryShort: ""}
		assert.Nil(t, Score(problem, item))
	})
}

func TestMatchItem(t *testing.T) {
	item := domain.FeedItem{
		ID:           10,
		Title:        "Prompt caching cuts inference costs",
		SummaryShort: "Reduce latency and spend with caching",
	}

	problems := []domain.ProblemField{
		{ID: 1, Title: "reduce inference costs", Active: true},                            // strong overlap
		{ID: 2, Title: "caching strategy for latency", Active: true},                      // partial overlap
		{ID: 3, Title: "prompt caching inference costs latency reduce", Active: false},    // best overlap but inactive
		{ID: 4, Title: "kubernetes cluster autoscaling", Active: true},                    // no overlap
	}

	results := MatchItem(problems, item)
	require.Len(t, results, 2)
	// sorted by confidence descending
	assert.Equal(t, int64(1), results[0].ProblemFieldID)
	assert.Equal(t, int64(2), results[1].ProblemFieldID)
	assert.GreaterOrEqual(t, results[0].Confidence, results[1].Confidence)
	for _, r := range results {
		assert.NotEqual(t, int64(3), r.ProblemFieldID, "inactive problem must not match")
	}
}

func TestMatchBatch(t *testing.T) {
	problems := []domain.ProblemField{
		{ID: 1, Title: "reduce support costs", Active: true},
		{ID: 2, Title: "improve model latency", Active: true},
	}
	items := []domain.FeedItem{
		{ID: 10, Title: "reduce support costs with automation", SummaryShort: ""},
		{ID: 11, Title: "improve model latency via quantization", SummaryShort: ""},
		{ID: 12, Title: "unrelated gardening tips", SummaryShort: ""},
	}

	results := MatchBatch(problems, items)
	require.Len(t, results, 2)
	assert.Equal(t, int64(10), results[0].FeedItemID)
	assert.Equal(t, int64(1), results[0].ProblemFieldID)
	assert.Equal(t, int64(11), results[1].FeedItemID)
	assert.Equal(t, int64(2), results[1].ProblemFieldID)

	t.Run("no problems no matches", func(t *testing.T) {
		assert.Empty(t, MatchBatch(nil, items))
	})
	t.Run("no items no matches", func(t *testing.T) {
		assert.Empty(t, MatchBatch(problems, nil))
	})
}
