// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mine scores the extractor's rule catalogue against a corpus
// of human-verified examples. Mining measures which rules fire and
// how often they fire correctly; it records the results for auditing
// but does not rewire the extraction cascades.
package mine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bloodlink/donor-engine/internal/extract"
	"github.com/bloodlink/donor-engine/internal/sanitize"
	"github.com/bloodlink/donor-engine/pkg/types"
)

// CorpusFunc fetches the verified-correct training examples.
type CorpusFunc func(ctx context.Context) ([]types.TrainingExample, error)

// PersistFunc upserts mined patterns keyed by (type, pattern, field).
type PersistFunc func(ctx context.Context, patterns []types.LearnedPattern) error

// Run fetches the corpus, mines it, and persists the result. It is
// the wiring used by the CLI; Mine itself is pure.
func Run(ctx context.Context, fetch CorpusFunc, persist PersistFunc) ([]types.LearnedPattern, types.MiningStats, error) {
	examples, err := fetch(ctx)
	if err != nil {
		return nil, types.MiningStats{}, fmt.Errorf("fetching corpus: %w", err)
	}

	patterns, stats := Mine(examples)

	if err := persist(ctx, patterns); err != nil {
		return nil, types.MiningStats{}, fmt.Errorf("persisting patterns: %w", err)
	}
	return patterns, stats, nil
}

// Mine evaluates all three rule families against the corpus and
// returns every rule that fired at least once, with its usage count
// and success rate, plus aggregate statistics. Incorrect examples are
// ignored; an empty corpus yields zero statistics, not an error.
// Mining is deterministic: the same corpus produces the same patterns
// in the same order.
func Mine(examples []types.TrainingExample) ([]types.LearnedPattern, types.MiningStats) {
	corpus := make([]types.TrainingExample, 0, len(examples))
	for _, ex := range examples {
		if ex.IsCorrect {
			corpus = append(corpus, ex)
		}
	}

	stats := types.MiningStats{ExamplesUsed: len(corpus)}
	if len(corpus) == 0 {
		return nil, stats
	}

	now := time.Now().UTC()
	var patterns []types.LearnedPattern

	for _, rule := range extract.RegexCatalog() {
		if p, ok := scoreRule(types.PatternRegex, rule, corpus, now); ok {
			patterns = append(patterns, p)
			stats.RegexPatterns++
		}
	}

	if p, ok := scorePositional(corpus, now); ok {
		patterns = append(patterns, p)
		stats.PositionalPatterns++
	}

	for _, rule := range extract.KeywordCatalog() {
		if p, ok := scoreRule(types.PatternKeyword, rule, corpus, now); ok {
			patterns = append(patterns, p)
			stats.KeywordPatterns++
		}
	}

	stats.PatternsLearned = len(patterns)
	var sum float64
	for _, p := range patterns {
		sum += p.Confidence
	}
	if len(patterns) > 0 {
		stats.MeanConfidence = sum / float64(len(patterns))
	}
	return patterns, stats
}

// scoreRule counts how many examples a rule's surface pattern fires
// on (usage) and, of those, how many have the target field verified
// non-empty (success).
func scoreRule(family types.PatternType, rule extract.CatalogRule, corpus []types.TrainingExample, now time.Time) (types.LearnedPattern, bool) {
	usage, success := 0, 0
	for _, ex := range corpus {
		if !rule.Matches(ex.RawText) {
			continue
		}
		usage++
		if ex.Expected.Fields()[rule.Field] != "" {
			success++
		}
	}
	if usage == 0 {
		return types.LearnedPattern{}, false
	}
	return newPattern(family, rule.Source, rule.Field, usage, success, now), true
}

// scorePositional scores the two-name rule: it fires when the leading
// lines split into referrer and donor, and succeeds when both
// inferred values are consistent with the verified ones (substring in
// either direction, case-insensitively).
func scorePositional(corpus []types.TrainingExample, now time.Time) (types.LearnedPattern, bool) {
	usage, success := 0, 0
	for _, ex := range corpus {
		referrer, name, ok := extract.TwoNameSplit(sanitize.Clean(ex.RawText))
		if !ok {
			continue
		}
		usage++
		if consistent(referrer, ex.Expected.Referrer) && consistent(name, ex.Expected.Name) {
			success++
		}
	}
	if usage == 0 {
		return types.LearnedPattern{}, false
	}
	return newPattern(types.PatternPositional, extract.PositionalRuleID, types.FieldReferrer, usage, success, now), true
}

// consistent reports whether one value contains the other,
// case-insensitively. Both being non-empty is required: an empty
// expected value means the rule inferred something the verifier says
// is not there.
func consistent(inferred, expected string) bool {
	if inferred == "" || expected == "" {
		return false
	}
	a, b := strings.ToLower(inferred), strings.ToLower(expected)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func newPattern(family types.PatternType, source, field string, usage, success int, now time.Time) types.LearnedPattern {
	rate := float64(success) / float64(usage)
	return types.LearnedPattern{
		PatternType: family,
		Pattern:     source,
		Field:       field,
		Confidence:  rate,
		UsageCount:  usage,
		IsEnabled:   rate > types.EnableThreshold,
		LastMinedAt: now,
	}
}
