package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/radar/pkg/domain"
)

func TestItemRepository_InsertItems(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	t.Run("insert assigns ids", func(t *testing.T) {
		inserted, err := repos.Item.InsertItems(ctx, []domain.FeedItem{testItem("a"), testItem("b")})
		require.NoError(t, err)
		require.Len(t, inserted, 2)
		assert.NotZero(t, inserted[0].ID)
		assert.NotZero(t, inserted[1].ID)
		assert.NotEqual(t, inserted[0].ID, inserted[1].ID)
	})

	t.Run("same url twice leaves one row", func(t *testing.T) {
		again, err := repos.Item.InsertItems(ctx, []domain.FeedItem{testItem("a")})
		require.NoError(t, err)
		assert.Empty(t, again, "cross-run duplicate is skipped, not returned")

		exists, err := repos.Item.ItemExists(ctx, testItem("a").SourceURL)
		require.NoError(t, err)
		assert.True(t, exists)

		var count int
		require.NoError(t, repos.DB.Get(&count,
			"SELECT count(*) FROM feed_items WHERE source_url = ?", testItem("a").SourceURL))
		assert.Equal(t, 1, count)
	})

	t.Run("mixed batch returns only new rows", func(t *testing.T) {
		inserted, err := repos.Item.InsertItems(ctx, []domain.FeedItem{testItem("b"), testItem("c")})
		require.NoError(t, err)
		require.Len(t, inserted, 1)
		assert.Equal(t, testItem("c").SourceURL, inserted[0].SourceURL)
	})

	t.Run("duplicate keeps original row untouched", func(t *testing.T) {
		changed := testItem("a")
		changed.Title = "rewritten title"
		_, err := repos.Item.InsertItems(ctx, []domain.FeedItem{changed})
		require.NoError(t, err)

		var title string
		require.NoError(t, repos.DB.Get(&title,
			"SELECT title FROM feed_items WHERE source_url = ?", changed.SourceURL))
		assert.Equal(t, "Item a", title, "ignore semantics, no update")
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		inserted, err := repos.Item.InsertItems(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, inserted)
	})
}

func TestItemRepository_GetItems(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	older := testItem("old")
	older.PublishedAt = older.PublishedAt.AddDate(0, 0, -1)
	newer := testItem("new")

	inserted, err := repos.Item.InsertItems(ctx, []domain.FeedItem{older, newer})
	require.NoError(t, err)
	require.Len(t, inserted, 2)

	t.Run("newest first", func(t *testing.T) {
		items, err := repos.Item.GetItems(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, newer.SourceURL, items[0].SourceURL)
		assert.Equal(t, older.SourceURL, items[1].SourceURL)
	})

	t.Run("limit and offset", func(t *testing.T) {
		items, err := repos.Item.GetItems(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, older.SourceURL, items[0].SourceURL)
	})

	t.Run("archived items excluded", func(t *testing.T) {
		require.NoError(t, repos.Item.SetArchived(ctx, inserted[0].ID, true))

		items, err := repos.Item.GetItems(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.NotEqual(t, inserted[0].ID, items[0].ID)

		// unarchive brings it back
		require.NoError(t, repos.Item.SetArchived(ctx, inserted[0].ID, false))
		items, err = repos.Item.GetItems(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestItemRepository_GetItem(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	src := testItem("single")
	plain := "plain text body"
	src.SummaryPlain = &plain

	inserted, err := repos.Item.InsertItems(ctx, []domain.FeedItem{src})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	got, err := repos.Item.GetItem(ctx, inserted[0].ID)
	require.NoError(t, err)
	assert.Equal(t, src.SourceURL, got.SourceURL)
	assert.Equal(t, src.Title, got.Title)
	require.NotNil(t, got.SummaryPlain)
	assert.Equal(t, plain, *got.SummaryPlain)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repos.Item.GetItem(ctx, 999999)
	require.Error(t, err)
}
