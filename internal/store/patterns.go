// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bloodlink/donor-engine/pkg/types"
)

// PatternFilter narrows ListPatterns results.
type PatternFilter struct {
	// Field filters by target record field.
	Field string

	// Family filters by rule family.
	Family types.PatternType

	// EnabledOnly keeps only enabled patterns.
	EnabledOnly bool
}

// UpsertPatterns writes mined patterns keyed by (pattern_type,
// pattern, field) in one transaction. A manual enable/disable
// override set by a verifier survives re-mining: only confidence,
// usage, and the derived enabled state are refreshed. This is the
// miner's persistence collaborator.
func (s *Store) UpsertPatterns(ctx context.Context, patterns []types.LearnedPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO learned_patterns (pattern_type, pattern, field, confidence, usage_count, is_enabled, last_mined_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pattern_type, pattern, field) DO UPDATE SET
			confidence = excluded.confidence,
			usage_count = excluded.usage_count,
			is_enabled = CASE WHEN learned_patterns.manual_override IS NULL
				THEN excluded.is_enabled ELSE learned_patterns.manual_override END,
			last_mined_at = excluded.last_mined_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range patterns {
		_, err := stmt.ExecContext(ctx,
			string(p.PatternType), p.Pattern, p.Field,
			p.Confidence, p.UsageCount, p.IsEnabled,
			p.LastMinedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("upserting pattern (%s, %s): %w", p.PatternType, p.Field, err)
		}
	}
	return tx.Commit()
}

// ListPatterns returns stored patterns matching the filter, ordered
// by family, field, then descending confidence.
func (s *Store) ListPatterns(ctx context.Context, filter PatternFilter) ([]types.LearnedPattern, error) {
	query := `SELECT pattern_type, pattern, field, confidence, usage_count, is_enabled, last_mined_at
		FROM learned_patterns WHERE 1=1`
	var args []any

	if filter.Field != "" {
		query += ` AND field = ?`
		args = append(args, filter.Field)
	}
	if filter.Family != "" {
		query += ` AND pattern_type = ?`
		args = append(args, string(filter.Family))
	}
	if filter.EnabledOnly {
		query += ` AND is_enabled = 1`
	}
	query += ` ORDER BY pattern_type, field, confidence DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying patterns: %w", err)
	}
	defer rows.Close()

	var out []types.LearnedPattern
	for rows.Next() {
		var (
			p       types.LearnedPattern
			minedAt string
		)
		if err := rows.Scan(&p.PatternType, &p.Pattern, &p.Field,
			&p.Confidence, &p.UsageCount, &p.IsEnabled, &minedAt); err != nil {
			return nil, fmt.Errorf("scanning pattern: %w", err)
		}
		p.LastMinedAt, _ = time.Parse(time.RFC3339Nano, minedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetPatternEnabled records a manual enable/disable decision for one
// pattern. The override sticks across subsequent mining passes until
// cleared with ClearPatternOverride.
func (s *Store) SetPatternEnabled(ctx context.Context, family types.PatternType, pattern, field string, enabled bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE learned_patterns SET is_enabled = ?, manual_override = ?
		 WHERE pattern_type = ? AND pattern = ? AND field = ?`,
		enabled, enabled, string(family), pattern, field)
	if err != nil {
		return fmt.Errorf("toggling pattern: %w", err)
	}
	return requireOneRow(res, family, pattern, field)
}

// ClearPatternOverride removes a manual override, returning the
// pattern to automatic enablement on the next mining pass.
func (s *Store) ClearPatternOverride(ctx context.Context, family types.PatternType, pattern, field string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE learned_patterns SET manual_override = NULL
		 WHERE pattern_type = ? AND pattern = ? AND field = ?`,
		string(family), pattern, field)
	if err != nil {
		return fmt.Errorf("clearing override: %w", err)
	}
	return requireOneRow(res, family, pattern, field)
}

func requireOneRow(res sql.Result, family types.PatternType, pattern, field string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no pattern (%s, %q, %s)", family, pattern, field)
	}
	return nil
}

// CountPatterns returns the number of stored patterns.
func (s *Store) CountPatterns(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM learned_patterns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting patterns: %w", err)
	}
	return n, nil
}
