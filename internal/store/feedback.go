// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bloodlink/donor-engine/pkg/types"
)

// AddFeedback stores an end-user correction for a live parse. The
// extraction engine never reads feedback; verifiers triage it and
// promote useful rows to training examples.
func (s *Store) AddFeedback(ctx context.Context, raw string, expected types.ParsedRecord) (types.Feedback, error) {
	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		return types.Feedback{}, fmt.Errorf("marshaling expected record: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (raw_text, expected, reviewed, created_at) VALUES (?, ?, 0, ?)`,
		raw, string(expectedJSON), now.Format(time.RFC3339Nano))
	if err != nil {
		return types.Feedback{}, fmt.Errorf("inserting feedback: %w", err)
	}

	fb := types.Feedback{RawText: raw, Expected: expected, CreatedAt: now}
	fb.ID, _ = res.LastInsertId()
	return fb, nil
}

// ListFeedback returns feedback rows, unreviewed first, newest first
// within each group.
func (s *Store) ListFeedback(ctx context.Context, unreviewedOnly bool) ([]types.Feedback, error) {
	query := `SELECT id, raw_text, expected, reviewed, created_at FROM feedback`
	if unreviewedOnly {
		query += ` WHERE reviewed = 0`
	}
	query += ` ORDER BY reviewed, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var out []types.Feedback
	for rows.Next() {
		var (
			fb           types.Feedback
			expectedJSON string
			createdAt    string
		)
		if err := rows.Scan(&fb.ID, &fb.RawText, &expectedJSON, &fb.Reviewed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(expectedJSON), &fb.Expected); err != nil {
			return nil, fmt.Errorf("decoding expected record for feedback %d: %w", fb.ID, err)
		}
		fb.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, fb)
	}
	return out, rows.Err()
}

// MarkFeedbackReviewed flags a feedback row as triaged.
func (s *Store) MarkFeedbackReviewed(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE feedback SET reviewed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking feedback reviewed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no feedback with id %d", id)
	}
	return nil
}
