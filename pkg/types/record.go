// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the donor extraction
// engine: parsed records, verified training examples, mined extraction
// patterns, and end-user feedback.
package types

import (
	"strings"
	"time"
)

// Field name constants used to key extractors, mined patterns, and
// per-field comparisons. These are the eight fields of a ParsedRecord.
const (
	FieldName       = "name"
	FieldBloodGroup = "blood_group"
	FieldBatch      = "batch"
	FieldHospital   = "hospital"
	FieldPhone      = "phone"
	FieldDate       = "date"
	FieldReferrer   = "referrer"
	FieldHallName   = "hall_name"
)

// DefaultUnknown is the placeholder for batch and hospital when no
// value could be extracted.
const DefaultUnknown = "Unknown"

// ParsedRecord is the normalized output of extracting one donor
// submission from free-form text. Records are constructed fresh per
// input span and never mutated after assembly.
type ParsedRecord struct {
	// Name is the donor's own name.
	Name string `json:"name" yaml:"name"`

	// BloodGroup is one of the eight canonical codes (A+, A-, B+, B-,
	// AB+, AB-, O+, O-) or empty when no group could be extracted.
	BloodGroup string `json:"blood_group" yaml:"blood_group"`

	// Batch is the donor's academic batch (e.g. "CSE 21-22"),
	// "Unknown" when not found.
	Batch string `json:"batch" yaml:"batch"`

	// Hospital is the donation venue, "Unknown" when not found.
	Hospital string `json:"hospital" yaml:"hospital"`

	// Phone is the canonical local-format number: exactly 11 digits
	// beginning 01. Empty when no valid number was found.
	Phone string `json:"phone" yaml:"phone"`

	// Date is the donation date in DD-MM-YYYY, or empty.
	Date string `json:"date" yaml:"date"`

	// Referrer is the person who referred or managed the donation,
	// possibly empty.
	Referrer string `json:"referrer" yaml:"referrer"`

	// HallName is the donor's residence hall, possibly empty.
	HallName string `json:"hall_name" yaml:"hall_name"`
}

// Usable reports whether downstream consumers should keep the record.
// A record with neither a name nor a blood group carries no identity
// and is dropped by multi-record parsing.
func (r ParsedRecord) Usable() bool {
	return r.Name != "" || r.BloodGroup != ""
}

// Fields returns the record as a field-name → value map, in the order
// of the Field* constants. Used for per-field comparison and mining.
func (r ParsedRecord) Fields() map[string]string {
	return map[string]string{
		FieldName:       r.Name,
		FieldBloodGroup: r.BloodGroup,
		FieldBatch:      r.Batch,
		FieldHospital:   r.Hospital,
		FieldPhone:      r.Phone,
		FieldDate:       r.Date,
		FieldReferrer:   r.Referrer,
		FieldHallName:   r.HallName,
	}
}

// FieldNames lists all record fields in canonical order.
func FieldNames() []string {
	return []string{
		FieldName, FieldBloodGroup, FieldBatch, FieldHospital,
		FieldPhone, FieldDate, FieldReferrer, FieldHallName,
	}
}

// CorrectThreshold is the minimum match fraction for a training
// example to count as correctly parsed.
const CorrectThreshold = 0.7

// MatchFraction returns the fraction of fields (out of eight) where
// expected and parsed agree, compared case-insensitively.
func MatchFraction(expected, parsed ParsedRecord) float64 {
	ef, pf := expected.Fields(), parsed.Fields()
	matched := 0
	for _, name := range FieldNames() {
		if strings.EqualFold(ef[name], pf[name]) {
			matched++
		}
	}
	return float64(matched) / float64(len(ef))
}

// TrainingExample pairs a raw text fragment with a human-verified
// expected record and the engine's current output for that text.
type TrainingExample struct {
	// ID is the store row identifier.
	ID int64 `json:"id" yaml:"id"`

	// RawText is the original fragment as submitted.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Expected is the record a verifier attests is correct.
	Expected ParsedRecord `json:"expected" yaml:"expected"`

	// Parsed is the engine output for RawText, cached when the example
	// was created or last recomputed.
	Parsed ParsedRecord `json:"parsed" yaml:"parsed"`

	// Confidence is the fraction of Parsed fields matching Expected,
	// recomputed whenever RawText or the engine changes.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// IsCorrect is derived: Confidence > CorrectThreshold. Only
	// correct examples feed pattern mining.
	IsCorrect bool `json:"is_correct" yaml:"is_correct"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// PatternType names a mined rule family.
type PatternType string

const (
	PatternRegex      PatternType = "regex"
	PatternPositional PatternType = "positional"
	PatternKeyword    PatternType = "keyword"
)

// EnableThreshold is the minimum success rate for a mined pattern to
// be enabled automatically. Verifiers may override per pattern.
const EnableThreshold = 0.3

// LearnedPattern is a mined extraction rule with effectiveness
// metadata. Patterns are uniquely identified by the triple
// (PatternType, Pattern, Field); re-mining upserts by that key.
type LearnedPattern struct {
	// PatternType is the rule family: regex, positional, or keyword.
	PatternType PatternType `json:"pattern_type" yaml:"pattern_type"`

	// Pattern is the rule body: a regex source, a named heuristic
	// identifier, or a literal keyword.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Field is the target record field the rule extracts.
	Field string `json:"field" yaml:"field"`

	// Confidence is the success rate: of the examples the rule fired
	// on, the fraction where the target field was verified non-empty.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// UsageCount is the number of corpus examples the rule fired on.
	UsageCount int `json:"usage_count" yaml:"usage_count"`

	// IsEnabled is Confidence > EnableThreshold unless a verifier has
	// toggled the pattern manually.
	IsEnabled bool `json:"is_enabled" yaml:"is_enabled"`

	LastMinedAt time.Time `json:"last_mined_at,omitempty" yaml:"last_mined_at,omitempty"`
}

// MiningStats summarizes one mining pass for reporting.
type MiningStats struct {
	// ExamplesUsed is the number of correct examples in the corpus.
	ExamplesUsed int `json:"examples_used" yaml:"examples_used"`

	// PatternsLearned is the number of rules that fired at least once.
	PatternsLearned int `json:"patterns_learned" yaml:"patterns_learned"`

	// Per-family counts of learned rules.
	RegexPatterns      int `json:"regex_patterns" yaml:"regex_patterns"`
	PositionalPatterns int `json:"positional_patterns" yaml:"positional_patterns"`
	KeywordPatterns    int `json:"keyword_patterns" yaml:"keyword_patterns"`

	// MeanConfidence averages the success rate across learned rules.
	// Zero when no rule fired.
	MeanConfidence float64 `json:"mean_confidence" yaml:"mean_confidence"`
}

// Feedback is an end-user correctness signal on a live parse. It has
// the shape of a training example without the cached engine output;
// the extraction engine never reads it.
type Feedback struct {
	ID int64 `json:"id" yaml:"id"`

	// RawText is the fragment the user parsed.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Expected is the record the user says is correct.
	Expected ParsedRecord `json:"expected" yaml:"expected"`

	// Reviewed marks whether a verifier has triaged this feedback.
	Reviewed bool `json:"reviewed" yaml:"reviewed"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
