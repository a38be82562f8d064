package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/radar/pkg/domain"
	"github.com/umputun/radar/pkg/taxonomy"
)

func TestTagger_Tag(t *testing.T) {
	entries, err := taxonomy.Load()
	require.NoError(t, err)
	tg := New(entries)

	t.Run("agentic announcement tags tool use", func(t *testing.T) {
		results := tg.Tag("Anthropic releases Claude Computer Use for autonomous desktop agents",
			"The new agentic capability lets the model do tool calling and browser automation")
		require.NotEmpty(t, results)
		assert.Equal(t, "tool-use-agents", results[0].Slug)
		assert.GreaterOrEqual(t, results[0].Confidence, 0.3)
		assert.NotEmpty(t, results[0].MatchedTerms)
	})

	t.Run("unrelated text yields nothing", func(t *testing.T) {
		results := tg.Tag("Best hiking trails in Switzerland", "A guide to alpine routes and mountain huts")
		assert.Empty(t, results)
	})

	t.Run("at most three tags sorted by confidence", func(t *testing.T) {
		// text hitting many categories at once
		results := tg.Tag("Multimodal vision agent with tool calling, reasoning and long context memory",
			"Benchmark results on latency, rate limit handling, OCR, chain-of-thought planning, function calling and RAG retrieval")
		require.NotEmpty(t, results)
		assert.LessOrEqual(t, len(results), MaxTags)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
		}
	})

	t.Run("confidence capped at one", func(t *testing.T) {
		entriesCap := []domain.CapabilityEntry{{
			Slug:   "everything",
			Name:   "Everything",
			Active: true,
			Keywords: []domain.KeywordRule{
				{Term: "alpha", Weight: 0.9},
				{Term: "beta", Weight: 0.9},
			},
		}}
		results := New(entriesCap).Tag("alpha beta", "")
		require.Len(t, results, 1)
		assert.InDelta(t, 1.0, results[0].Confidence, 0.0001)
	})

	t.Run("below threshold dropped", func(t *testing.T) {
		entriesLow := []domain.CapabilityEntry{{
			Slug:     "weak",
			Name:     "Weak",
			Active:   true,
			Keywords: []domain.KeywordRule{{Term: "alpha", Weight: 0.2}},
		}}
		results := New(entriesLow).Tag("alpha", "")
		assert.Empty(t, results)
	})

	t.Run("substring match without word boundaries", func(t *testing.T) {
		entriesSub := []domain.CapabilityEntry{{
			Slug:     "sub",
			Name:     "Sub",
			Active:   true,
			Keywords: []domain.KeywordRule{{Term: "rag", Weight: 0.5}},
		}}
		// "rag" inside "storage" still matches
		results := New(entriesSub).Tag("cloud storage pricing", "")
		require.Len(t, results, 1)
		assert.Equal(t, "sub", results[0].Slug)
	})

	t.Run("tie keeps taxonomy order", func(t *testing.T) {
		entriesTie := []domain.CapabilityEntry{
			{Slug: "first", Name: "First", Active: true, Keywords: []domain.KeywordRule{{Term: "alpha", Weight: 0.5}}},
			{Slug: "second", Name: "Second", Active: true, Keywords: []domain.KeywordRule{{Term: "beta", Weight: 0.5}}},
		}
		results := New(entriesTie).Tag("alpha beta", "")
		require.Len(t, results, 2)
		assert.Equal(t, "first", results[0].Slug)
		assert.Equal(t, "second", results[1].Slug)
	})

	t.Run("inactive entries skipped", func(t *testing.T) {
		entriesOff := []domain.CapabilityEntry{{
			Slug:     "off",
			Name:     "Off",
			Active:   false,
			Keywords: []domain.KeywordRule{{Term: "alpha", Weight: 0.9}},
		}}
		results := New(entriesOff).Tag("alpha", "")
		assert.Empty(t, results)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		title := "LLM agent with function calling and planning"
		summary := "tool calling, multi-step reasoning, json mode"
		first := tg.Tag(title, summary)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, tg.Tag(title, summary))
		}
	})
}

func TestTagger_TagBatch(t *testing.T) {
	entries := []domain.CapabilityEntry{{
		Slug:     "agents",
		Name:     "Agents",
		Active:   true,
		Keywords: []domain.KeywordRule{{Term: "agent", Weight: 0.6}},
	}}
	tg := New(entries)

	items := []domain.FeedItem{
		{Title: "autonomous agent framework", SummaryShort: ""},
		{Title: "nothing relevant here", SummaryShort: ""},
	}
	results := tg.TagBatch(items)
	require.Len(t, results, 2)
	require.Len(t, results[0], 1)
	assert.Equal(t, "agents", results[0][0].Slug)
	assert.Empty(t, results[1])
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 0.35, round2(0.345), 0.0001) // half rounds away from zero
	assert.InDelta(t, 0.3, round2(0.3), 0.0001)
	assert.InDelta(t, 1.2, round2(1.2000001), 0.0001)
}
