package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/radar/pkg/domain"
)

// ProblemRepository handles problem field database operations. Problem fields
// are owned by the problem-management API; the pipeline only reads active
// ones, the write methods exist for that collaborator and for tests.
type ProblemRepository struct {
	db *sqlx.DB
}

// problemSQL represents a problem field for SQL operations
type problemSQL struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Industry    string    `db:"industry"`
	Priority    string    `db:"priority"`
	Active      bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(database *sqlx.DB) *ProblemRepository {
	return &ProblemRepository{db: database}
}

// GetActiveProblemFields returns all active problem fields
func (r *ProblemRepository) GetActiveProblemFields(ctx context.Context) ([]domain.ProblemField, error) {
	var rows []problemSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM problem_fields WHERE is_active = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get active problem fields: %w", err)
	}

	fields := make([]domain.ProblemField, len(rows))
	for i, row := range rows {
		fields[i] = domain.ProblemField{
			ID:          row.ID,
			UserID:      row.UserID,
			Title:       row.Title,
			Description: row.Description,
			Industry:    row.Industry,
			Priority:    row.Priority,
			Active:      row.Active,
			CreatedAt:   row.CreatedAt,
		}
	}
	return fields, nil
}

// CreateProblemField inserts a problem field and sets its ID
func (r *ProblemRepository) CreateProblemField(ctx context.Context, field *domain.ProblemField) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO problem_fields (user_id, title, description, industry, priority, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		field.UserID, field.Title, field.Description, field.Industry, field.Priority, field.Active)
	if err != nil {
		return fmt.Errorf("create problem field: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	field.ID = id
	return nil
}
