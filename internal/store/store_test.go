// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodlink/donor-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord() types.ParsedRecord {
	return types.ParsedRecord{
		Name:       "Karim",
		BloodGroup: "B+",
		Batch:      types.DefaultUnknown,
		Hospital:   types.DefaultUnknown,
		Phone:      "01712345678",
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, "donor.db"))
	require.NoError(t, err)

	// Reopening an existing database must not fail.
	s2, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	s2.Close()
}

func TestAddAndListExamples(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := testRecord()

	// Exact parse: full match, correct.
	ex, err := s.AddExample(ctx, "Karim\nB+\n01712345678", rec, rec)
	require.NoError(t, err)
	assert.NotZero(t, ex.ID)
	assert.Equal(t, 1.0, ex.Confidence)
	assert.True(t, ex.IsCorrect)

	// Badly parsed: half the fields differ, incorrect.
	wrong := rec
	wrong.Name = "Someone Else"
	wrong.BloodGroup = "O-"
	wrong.Phone = ""
	ex2, err := s.AddExample(ctx, "garbled text", rec, wrong)
	require.NoError(t, err)
	assert.False(t, ex2.IsCorrect)

	all, err := s.ListExamples(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, ex2.ID, all[0].ID)
	assert.Equal(t, ex.ID, all[1].ID)
	assert.Equal(t, rec, all[1].Expected)
	assert.Equal(t, rec, all[1].Parsed)

	correct, err := s.ListExamples(ctx, true)
	require.NoError(t, err)
	require.Len(t, correct, 1)
	assert.Equal(t, ex.ID, correct[0].ID)
}

func TestCorrectExamplesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := testRecord()

	first, err := s.AddExample(ctx, "Karim\nB+", rec, rec)
	require.NoError(t, err)
	second, err := s.AddExample(ctx, "Karim\nB+\nagain", rec, rec)
	require.NoError(t, err)

	corpus, err := s.CorrectExamples(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 2)
	// Oldest first.
	assert.Equal(t, first.ID, corpus[0].ID)
	assert.Equal(t, second.ID, corpus[1].ID)
}

func TestRecomputeExamples(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := testRecord()

	// Stored with a wrong cached parse, so the example starts
	// incorrect.
	wrong := types.ParsedRecord{Name: "Nobody"}
	ex, err := s.AddExample(ctx, "Karim\nB+\n01712345678", rec, wrong)
	require.NoError(t, err)
	require.False(t, ex.IsCorrect)

	// Recompute with a parser that now gets it right: the example
	// flips to correct.
	var buf bytes.Buffer
	flipped, err := s.RecomputeExamples(ctx, func(string) types.ParsedRecord { return rec }, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)
	assert.Contains(t, buf.String(), "1 flipped")

	corpus, err := s.CorrectExamples(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, rec, corpus[0].Parsed)
	assert.Equal(t, 1.0, corpus[0].Confidence)

	// A second pass with the same parser flips nothing.
	buf.Reset()
	flipped, err = s.RecomputeExamples(ctx, func(string) types.ParsedRecord { return rec }, &buf)
	require.NoError(t, err)
	assert.Zero(t, flipped)
}

func minedPattern(confidence float64) types.LearnedPattern {
	return types.LearnedPattern{
		PatternType: types.PatternRegex,
		Pattern:     `\b01\d{9}\b`,
		Field:       types.FieldPhone,
		Confidence:  confidence,
		UsageCount:  4,
		IsEnabled:   confidence > types.EnableThreshold,
		LastMinedAt: time.Now().UTC(),
	}
}

func TestUpsertPatternsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPatterns(ctx, []types.LearnedPattern{minedPattern(0.8)}))
	require.NoError(t, s.UpsertPatterns(ctx, []types.LearnedPattern{minedPattern(0.9)}))

	n, err := s.CountPatterns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	patterns, err := s.ListPatterns(ctx, PatternFilter{})
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, 0.9, patterns[0].Confidence)
	assert.True(t, patterns[0].IsEnabled)
}

func TestManualOverrideSurvivesRemining(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := minedPattern(0.8)

	require.NoError(t, s.UpsertPatterns(ctx, []types.LearnedPattern{p}))
	require.NoError(t, s.SetPatternEnabled(ctx, p.PatternType, p.Pattern, p.Field, false))

	// Re-mining wants the pattern enabled, but the manual disable
	// sticks.
	require.NoError(t, s.UpsertPatterns(ctx, []types.LearnedPattern{minedPattern(0.95)}))

	patterns, err := s.ListPatterns(ctx, PatternFilter{})
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.False(t, patterns[0].IsEnabled)
	assert.Equal(t, 0.95, patterns[0].Confidence, "stats still refresh under an override")

	// Clearing the override returns control to mining.
	require.NoError(t, s.ClearPatternOverride(ctx, p.PatternType, p.Pattern, p.Field))
	require.NoError(t, s.UpsertPatterns(ctx, []types.LearnedPattern{minedPattern(0.95)}))

	patterns, err = s.ListPatterns(ctx, PatternFilter{})
	require.NoError(t, err)
	assert.True(t, patterns[0].IsEnabled)
}

func TestSetPatternEnabledUnknown(t *testing.T) {
	s := newTestStore(t)
	err := s.SetPatternEnabled(context.Background(), types.PatternKeyword, "nope", types.FieldName, true)
	require.Error(t, err)
}

func TestListPatternsFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	patterns := []types.LearnedPattern{
		{PatternType: types.PatternRegex, Pattern: "a", Field: types.FieldPhone, Confidence: 0.9, UsageCount: 3, IsEnabled: true, LastMinedAt: time.Now().UTC()},
		{PatternType: types.PatternRegex, Pattern: "b", Field: types.FieldDate, Confidence: 0.2, UsageCount: 1, IsEnabled: false, LastMinedAt: time.Now().UTC()},
		{PatternType: types.PatternKeyword, Pattern: "phone:", Field: types.FieldPhone, Confidence: 1.0, UsageCount: 2, IsEnabled: true, LastMinedAt: time.Now().UTC()},
	}
	require.NoError(t, s.UpsertPatterns(ctx, patterns))

	byField, err := s.ListPatterns(ctx, PatternFilter{Field: types.FieldPhone})
	require.NoError(t, err)
	assert.Len(t, byField, 2)

	byFamily, err := s.ListPatterns(ctx, PatternFilter{Family: types.PatternKeyword})
	require.NoError(t, err)
	require.Len(t, byFamily, 1)
	assert.Equal(t, "phone:", byFamily[0].Pattern)

	enabled, err := s.ListPatterns(ctx, PatternFilter{EnabledOnly: true})
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}

func TestFeedbackLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := testRecord()

	fb, err := s.AddFeedback(ctx, "Karim\nB+", rec)
	require.NoError(t, err)
	assert.NotZero(t, fb.ID)

	unreviewed, err := s.ListFeedback(ctx, true)
	require.NoError(t, err)
	require.Len(t, unreviewed, 1)
	assert.Equal(t, rec, unreviewed[0].Expected)
	assert.False(t, unreviewed[0].Reviewed)

	require.NoError(t, s.MarkFeedbackReviewed(ctx, fb.ID))

	unreviewed, err = s.ListFeedback(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, unreviewed)

	all, err := s.ListFeedback(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Reviewed)

	require.Error(t, s.MarkFeedbackReviewed(ctx, 999))
}

func TestExport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.UpsertPatterns(ctx, []types.LearnedPattern{minedPattern(0.8)}))

	yamlPath, err := s.ExportYAML(ctx, PatternFilter{})
	require.NoError(t, err)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(yamlPath, "patterns.yaml"))
	assert.Contains(t, string(data), "pattern_type: regex")

	jsonPath, err := s.ExportJSON(ctx, PatternFilter{})
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pattern_type": "regex"`)
}

func TestListExamplesLimit(t *testing.T) {
	s, err := Open(types.StoreConfig{DataDir: t.TempDir(), MaxResults: 2})
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()
	rec := testRecord()

	for i := 0; i < 3; i++ {
		_, err := s.AddExample(ctx, "Karim\nB+", rec, rec)
		require.NoError(t, err)
	}

	limited, err := s.ListExamples(ctx, false)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	// The mining corpus ignores the list limit.
	corpus, err := s.CorrectExamples(ctx)
	require.NoError(t, err)
	assert.Len(t, corpus, 3)
}
