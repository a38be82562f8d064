package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/radar/pkg/domain"
)

// MatchRepository handles problem match database operations
type MatchRepository struct {
	db *sqlx.DB
}

// matchSQL represents a problem match for SQL operations
type matchSQL struct {
	ID             int64     `db:"id"`
	ProblemFieldID int64     `db:"problem_field_id"`
	FeedItemID     int64     `db:"feed_item_id"`
	Confidence     float64   `db:"confidence"`
	MatchMethod    string    `db:"match_method"`
	MatchReason    string    `db:"match_reason"`
	UserFeedback   *string   `db:"user_feedback"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(database *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// InsertMatches persists matches with ignore-on-conflict semantics keyed on
// the (problem_field_id, feed_item_id) pair and returns how many rows were
// actually inserted. Upserting the same match twice leaves one row.
func (r *MatchRepository) InsertMatches(ctx context.Context, matches []domain.ProblemMatch) (int, error) {
	if len(matches) == 0 {
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

		for _, m := range matches {
			res, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO problem_matches (problem_field_id, feed_item_id, confidence, match_method, match_reason)
				VALUES (?, ?, ?, ?, ?)`,
				m.ProblemFieldID, m.FeedItemID, m.Confidence, m.MatchMethod, m.MatchReason)
			if err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: fmt.Errorf("insert match: %w", err)}
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
		return 0, fmt.Errorf("insert matches: %w", err)
	}

	return inserted, nil
}

// GetMatchesForProblem returns matches for one problem field, highest
// confidence first
func (r *MatchRepository) GetMatchesForProblem(ctx context.Context, problemFieldID int64) ([]domain.ProblemMatch, error) {
	var rows []matchSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM problem_matches WHERE problem_field_id = ? ORDER BY confidence DESC", problemFieldID)
	if err != nil {
		return nil, fmt.Errorf("get matches for problem: %w", err)
	}

	matches := make([]domain.ProblemMatch, len(rows))
	for i, row := range rows {
		matches[i] = domain.ProblemMatch{
			ID:             row.ID,
			ProblemFieldID: row.ProblemFieldID,
			FeedItemID:     row.FeedItemID,
			Confidence:     row.Confidence,
			MatchMethod:    row.MatchMethod,
			MatchReason:    row.MatchReason,
			UserFeedback:   row.UserFeedback,
			CreatedAt:      row.CreatedAt,
		}
	}
	return matches, nil
}
