// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bloodlink/donor-engine/pkg/types"
)

// AddExample stores a verified example. parsed is the engine's
// current output for raw; confidence and correctness are derived from
// the field-by-field comparison against expected.
func (s *Store) AddExample(ctx context.Context, raw string, expected, parsed types.ParsedRecord) (types.TrainingExample, error) {
	now := time.Now().UTC()
	ex := types.TrainingExample{
		RawText:    raw,
		Expected:   expected,
		Parsed:     parsed,
		Confidence: types.MatchFraction(expected, parsed),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	ex.IsCorrect = ex.Confidence > types.CorrectThreshold

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		return types.TrainingExample{}, fmt.Errorf("marshaling expected record: %w", err)
	}
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return types.TrainingExample{}, fmt.Errorf("marshaling parsed record: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO training_examples (raw_text, expected, parsed, confidence, is_correct, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		raw, string(expectedJSON), string(parsedJSON), ex.Confidence, ex.IsCorrect,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.TrainingExample{}, fmt.Errorf("inserting example: %w", err)
	}
	ex.ID, _ = res.LastInsertId()
	return ex, nil
}

// ListExamples returns stored examples, newest first, up to the store
// default limit. With onlyCorrect set, incorrect examples are
// filtered out.
func (s *Store) ListExamples(ctx context.Context, onlyCorrect bool) ([]types.TrainingExample, error) {
	query := `SELECT id, raw_text, expected, parsed, confidence, is_correct, created_at, updated_at
		FROM training_examples`
	if onlyCorrect {
		query += ` WHERE is_correct = 1`
	}
	query += ` ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying examples: %w", err)
	}
	defer rows.Close()
	return scanExamples(rows)
}

// CorrectExamples returns the full verified-correct corpus with no
// limit, oldest first. This is the miner's corpus-fetch collaborator.
func (s *Store) CorrectExamples(ctx context.Context) ([]types.TrainingExample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, raw_text, expected, parsed, confidence, is_correct, created_at, updated_at
		 FROM training_examples WHERE is_correct = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()
	return scanExamples(rows)
}

// RecomputeExamples re-parses every stored raw text with parse and
// refreshes the cached output, confidence, and correctness. Returns
// the number of examples whose correctness flipped.
func (s *Store) RecomputeExamples(ctx context.Context, parse func(string) types.ParsedRecord, w io.Writer) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, raw_text, expected, parsed, confidence, is_correct, created_at, updated_at
		 FROM training_examples ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("querying examples: %w", err)
	}
	examples, err := scanExamples(rows)
	rows.Close()
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, ex := range examples {
		select {
		case <-ctx.Done():
			return flipped, ctx.Err()
		default:
		}

		parsed := parse(ex.RawText)
		confidence := types.MatchFraction(ex.Expected, parsed)
		isCorrect := confidence > types.CorrectThreshold

		parsedJSON, err := json.Marshal(parsed)
		if err != nil {
			return flipped, fmt.Errorf("marshaling parsed record: %w", err)
		}

		_, err = s.db.ExecContext(ctx,
			`UPDATE training_examples
			 SET parsed = ?, confidence = ?, is_correct = ?, updated_at = ?
			 WHERE id = ?`,
			string(parsedJSON), confidence, isCorrect,
			time.Now().UTC().Format(time.RFC3339Nano), ex.ID,
		)
		if err != nil {
			return flipped, fmt.Errorf("updating example %d: %w", ex.ID, err)
		}

		if isCorrect != ex.IsCorrect {
			flipped++
			fmt.Fprintf(w, "example %d: %.2f -> %.2f (correct: %t)\n",
				ex.ID, ex.Confidence, confidence, isCorrect)
		}
	}

	fmt.Fprintf(w, "recomputed %d example(s), %d flipped\n", len(examples), flipped)
	return flipped, nil
}

func scanExamples(rows *sql.Rows) ([]types.TrainingExample, error) {
	var out []types.TrainingExample
	for rows.Next() {
		var (
			ex                       types.TrainingExample
			expectedJSON, parsedJSON string
			createdAt, updatedAt     string
		)
		if err := rows.Scan(&ex.ID, &ex.RawText, &expectedJSON, &parsedJSON,
			&ex.Confidence, &ex.IsCorrect, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning example: %w", err)
		}
		if err := json.Unmarshal([]byte(expectedJSON), &ex.Expected); err != nil {
			return nil, fmt.Errorf("decoding expected record for example %d: %w", ex.ID, err)
		}
		if err := json.Unmarshal([]byte(parsedJSON), &ex.Parsed); err != nil {
			return nil, fmt.Errorf("decoding parsed record for example %d: %w", ex.ID, err)
		}
		ex.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		ex.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		out = append(out, ex)
	}
	return out, rows.Err()
}
