package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/radar/pkg/domain"
)

// ItemRepository handles feed item database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents a feed item for SQL operations
type itemSQL struct {
	ID             int64             `db:"id"`
	SourceType     domain.SourceType `db:"source_type"`
	SourceName     string            `db:"source_name"`
	SourceURL      string            `db:"source_url"`
	Title          string            `db:"title"`
	SummaryShort   string            `db:"summary_short"`
	SummaryPlain   *string           `db:"summary_plain"`
	PublishedAt    time.Time         `db:"published_at"`
	FetchedAt      time.Time         `db:"fetched_at"`
	RelevanceScore float64           `db:"relevance_score"`
	Language       string            `db:"language"`
	Archived       bool              `db:"archived"`
	CreatedAt      time.Time         `db:"created_at"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(database *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: database}
}

// InsertItems persists a batch with ignore-on-conflict semantics keyed on
// source_url and returns only the rows actually inserted in this call, with
// their IDs populated. Items whose URL already exists anywhere in the store
// are silently skipped, never updated.
func (r *ItemRepository) InsertItems(ctx context.Context, items []domain.FeedItem) ([]domain.FeedItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var inserted []domain.FeedItem
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		inserted = inserted[:0]

		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("begin tx: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		query := `
			INSERT OR IGNORE INTO feed_items (
				source_type, source_name, source_url, title, summary_short, summary_plain,
				published_at, fetched_at, relevance_score, language, archived
			) VALUES (
				:source_type, :source_name, :source_url, :title, :summary_short, :summary_plain,
				:published_at, :fetched_at, :relevance_score, :language, :archived
			)
		`
		for _, item := range items {
			res, err := tx.NamedExecContext(ctx, query, toSQLItem(item))
			if err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: fmt.Errorf("insert item %s: %w", item.SourceURL, err)}
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return &criticalError{err: fmt.Errorf("rows affected: %w", err)}
			}
			if affected == 0 {
				continue // conflict on source_url, cross-run duplicate
			}

			id, err := res.LastInsertId()
			if err != nil {
				return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
			}
			item.ID = id
			inserted = append(inserted, item)
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit: %w", err)}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert items: %w", err)
	}

	return inserted, nil
}

// GetItem retrieves an item by ID
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.FeedItem, error) {
	var sqlItem itemSQL
	if err := r.db.GetContext(ctx, &sqlItem, "SELECT * FROM feed_items WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	item := toDomainItem(sqlItem)
	return &item, nil
}

// GetItems retrieves non-archived items, newest first
func (r *ItemRepository) GetItems(ctx context.Context, limit, offset int) ([]domain.FeedItem, error) {
	query := `
		SELECT * FROM feed_items
		WHERE archived = 0
		ORDER BY published_at DESC
		LIMIT ? OFFSET ?
	`
	var sqlItems []itemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, query, limit, offset); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	items := make([]domain.FeedItem, len(sqlItems))
	for i, s := range sqlItems {
		items[i] = toDomainItem(s)
	}
	return items, nil
}

// SetArchived flips the archived flag, the only post-insert mutation items get
func (r *ItemRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE feed_items SET archived = ? WHERE id = ?", archived, id); err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	return nil
}

// ItemExists checks if an item with the given source URL already exists
func (r *ItemRepository) ItemExists(ctx context.Context, sourceURL string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM feed_items WHERE source_url = ?)", sourceURL)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

func toSQLItem(item domain.FeedItem) itemSQL {
	return itemSQL{
		ID:             item.ID,
		SourceType:     item.SourceType,
		SourceName:     item.SourceName,
		SourceURL:      item.SourceURL,
		Title:          item.Title,
		SummaryShort:   item.SummaryShort,
		SummaryPlain:   item.SummaryPlain,
		PublishedAt:    item.PublishedAt,
		FetchedAt:      item.FetchedAt,
		RelevanceScore: item.RelevanceScore,
		Language:       item.Language,
		Archived:       item.Archived,
	}
}

func toDomainItem(s itemSQL) domain.FeedItem {
	return domain.FeedItem{
		ID:             s.ID,
		SourceType:     s.SourceType,
		SourceName:     s.SourceName,
		SourceURL:      s.SourceURL,
		Title:          s.Title,
		SummaryShort:   s.SummaryShort,
		SummaryPlain:   s.SummaryPlain,
		PublishedAt:    s.PublishedAt,
		FetchedAt:      s.FetchedAt,
		RelevanceScore: s.RelevanceScore,
		Language:       s.Language,
		Archived:       s.Archived,
		CreatedAt:      s.CreatedAt,
	}
}
