package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/radar/pkg/domain"
)

func testTaxonomy() []domain.CapabilityEntry {
	return []domain.CapabilityEntry{
		{
			Slug: "cap-one", Name: "Cap One", Icon: "one", Active: true,
			Keywords: []domain.KeywordRule{
				{Term: "alpha", Weight: 0.9},
				{Term: "beta", Weight: 0.5},
			},
		},
		{
			Slug: "cap-two", Name: "Cap Two", Icon: "two", Active: true,
			Keywords: []domain.KeywordRule{{Term: "gamma", Weight: 0.7}},
		},
		{
			Slug: "cap-off", Name: "Cap Off", Active: false,
			Keywords: []domain.KeywordRule{{Term: "delta", Weight: 0.6}},
		},
	}
}

func TestTaxonomyRepository_Seed(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Taxonomy.Seed(ctx, testTaxonomy()))

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, repos.Taxonomy.Seed(ctx, testTaxonomy()))

		var caps, keywords int
		require.NoError(t, repos.DB.Get(&caps, "SELECT count(*) FROM capability_taxonomy"))
		require.NoError(t, repos.DB.Get(&keywords, "SELECT count(*) FROM capability_keywords"))
		assert.Equal(t, 3, caps)
		assert.Equal(t, 4, keywords)
	})

	t.Run("active entries with ordered keywords", func(t *testing.T) {
		entries, err := repos.Taxonomy.GetActiveEntries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2, "inactive entry excluded")

		assert.Equal(t, "cap-one", entries[0].Slug)
		require.Len(t, entries[0].Keywords, 2)
		assert.Equal(t, "alpha", entries[0].Keywords[0].Term)
		assert.InDelta(t, 0.9, entries[0].Keywords[0].Weight, 0.0001)
		assert.Equal(t, "beta", entries[0].Keywords[1].Term)

		assert.Equal(t, "cap-two", entries[1].Slug)
		require.Len(t, entries[1].Keywords, 1)
	})

	t.Run("slug ids cover active entries only", func(t *testing.T) {
		ids, err := repos.Taxonomy.SlugIDs(ctx)
		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.Contains(t, ids, "cap-one")
		assert.Contains(t, ids, "cap-two")
		assert.NotContains(t, ids, "cap-off")
	})
}
