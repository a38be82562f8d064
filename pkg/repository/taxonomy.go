package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/radar/pkg/domain"
)

// TaxonomyRepository handles capability taxonomy database operations.
// The taxonomy is configured out-of-band; aside from the startup seed the
// pipeline treats it as read-only.
type TaxonomyRepository struct {
	db *sqlx.DB
}

// capabilitySQL represents a taxonomy entry for SQL operations
type capabilitySQL struct {
	ID               int64  `db:"id"`
	Slug             string `db:"slug"`
	Name             string `db:"name"`
	Icon             string `db:"icon"`
	DescriptionTech  string `db:"description_tech"`
	DescriptionPlain string `db:"description_plain"`
	Active           bool   `db:"is_active"`
}

// keywordSQL represents one weighted keyword rule for SQL operations
type keywordSQL struct {
	ID           int64   `db:"id"`
	CapabilityID int64   `db:"capability_id"`
	Term         string  `db:"term"`
	Weight       float64 `db:"weight"`
	Position     int     `db:"position"`
}

// NewTaxonomyRepository creates a new taxonomy repository
func NewTaxonomyRepository(database *sqlx.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: database}
}

// Seed inserts taxonomy entries and their keyword rules with
// ignore-on-conflict semantics, safe to call on every startup
func (r *TaxonomyRepository) Seed(ctx context.Context, entries []domain.CapabilityEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, entry := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO capability_taxonomy (slug, name, icon, description_tech, description_plain, is_active)
			VALUES (?, ?, ?, ?, ?, ?)`,
			entry.Slug, entry.Name, entry.Icon, entry.DescriptionTech, entry.DescriptionPlain, entry.Active)
		if err != nil {
			return fmt.Errorf("seed capability %s: %w", entry.Slug, err)
		}

		var capID int64
		if err := tx.GetContext(ctx, &capID, "SELECT id FROM capability_taxonomy WHERE slug = ?", entry.Slug); err != nil {
			return fmt.Errorf("resolve capability %s: %w", entry.Slug, err)
		}

		for pos, kw := range entry.Keywords {
			_, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO capability_keywords (capability_id, term, weight, position)
				VALUES (?, ?, ?, ?)`, capID, kw.Term, kw.Weight, pos)
			if err != nil {
				return fmt.Errorf("seed keyword %s/%s: %w", entry.Slug, kw.Term, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetActiveEntries returns active taxonomy entries with their keyword rules
// in stored order
func (r *TaxonomyRepository) GetActiveEntries(ctx context.Context) ([]domain.CapabilityEntry, error) {
	var caps []capabilitySQL
	err := r.db.SelectContext(ctx, &caps, "SELECT * FROM capability_taxonomy WHERE is_active = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get capabilities: %w", err)
	}

	var keywords []keywordSQL
	err = r.db.SelectContext(ctx, &keywords, `
		SELECT k.* FROM capability_keywords k
		JOIN capability_taxonomy c ON c.id = k.capability_id
		WHERE c.is_active = 1
		ORDER BY k.capability_id, k.position`)
	if err != nil {
		return nil, fmt.Errorf("get keywords: %w", err)
	}

	rulesByCap := make(map[int64][]domain.KeywordRule)
	for _, k := range keywords {
		rulesByCap[k.CapabilityID] = append(rulesByCap[k.CapabilityID], domain.KeywordRule{Term: k.Term, Weight: k.Weight})
	}

	entries := make([]domain.CapabilityEntry, len(caps))
	for i, c := range caps {
		entries[i] = domain.CapabilityEntry{
			ID:               c.ID,
			Slug:             c.Slug,
			Name:             c.Name,
			Icon:             c.Icon,
			DescriptionTech:  c.DescriptionTech,
			DescriptionPlain: c.DescriptionPlain,
			Active:           c.Active,
			Keywords:         rulesByCap[c.ID],
		}
	}
	return entries, nil
}

// SlugIDs returns a slug to ID mapping for active taxonomy entries
func (r *TaxonomyRepository) SlugIDs(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		ID   int64  `db:"id"`
		Slug string `db:"slug"`
	}
	err := r.db.SelectContext(ctx, &rows, "SELECT id, slug FROM capability_taxonomy WHERE is_active = 1")
	if err != nil {
		return nil, fmt.Errorf("get slug ids: %w", err)
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Slug] = row.ID
	}
	return result, nil
}
