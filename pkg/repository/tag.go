package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/radar/pkg/domain"
)

// TagRepository handles feed item tag database operations
type TagRepository struct {
	db *sqlx.DB
}

// tagSQL represents a feed item tag for SQL operations
type tagSQL struct {
	ID           int64     `db:"id"`
	FeedItemID   int64     `db:"feed_item_id"`
	CapabilityID int64     `db:"capability_id"`
	Confidence   float64   `db:"confidence"`
	AssignedBy   string    `db:"assigned_by"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewTagRepository creates a new tag repository
func NewTagRepository(database *sqlx.DB) *TagRepository {
	return &TagRepository{db: database}
}

// InsertTags persists tags with ignore-on-conflict semantics keyed on the
// (feed_item_id, capability_id) pair and returns how many rows were actually
// inserted. Re-tagging an already tagged item is a no-op, not an error.
func (r *TagRepository) InsertTags(ctx context.Context, tags []domain.FeedItemTag) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	inserted := 0
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		inserted = 0

		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("begin tx: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		for _, tag := range tags {
			res, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO feed_item_tags (feed_item_id, capability_id, confidence, assigned_by)
				VALUES (?, ?, ?, ?)`,
				tag.FeedItemID, tag.CapabilityID, tag.Confidence, tag.AssignedBy)
			if err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: fmt.Errorf("insert tag: %w", err)}
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return &criticalError{err: fmt.Errorf("rows affected: %w", err)}
			}
			inserted += int(affected)
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
		return 0, fmt.Errorf("insert tags: %w", err)
	}

	return inserted, nil
}

// GetItemTags returns tags for one feed item, highest confidence first
func (r *TagRepository) GetItemTags(ctx context.Context, feedItemID int64) ([]domain.FeedItemTag, error) {
	var rows []tagSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM feed_item_tags WHERE feed_item_id = ? ORDER BY confidence DESC", feedItemID)
	if err != nil {
		return nil, fmt.Errorf("get item tags: %w", err)
	}

	tags := make([]domain.FeedItemTag, len(rows))
	for i, row := range rows {
		tags[i] = domain.FeedItemTag{
			ID:           row.ID,
			FeedItemID:   row.FeedItemID,
			CapabilityID: row.CapabilityID,
			Confidence:   row.Confidence,
			AssignedBy:   row.AssignedBy,
			CreatedAt:    row.CreatedAt,
		}
	}
	return tags, nil
}
