// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns sanitized free-form donor submissions into
// normalized records. Each field has its own extractor, modeled as a
// prioritized cascade of independent rules evaluated in order and
// short-circuiting on the first success, so individual heuristics stay
// auditable and testable on their own.
package extract

import (
	"strings"

	"github.com/bloodlink/donor-engine/internal/normalize"
	"github.com/bloodlink/donor-engine/internal/sanitize"
	"github.com/bloodlink/donor-engine/pkg/types"
)

// Parser runs the field extractors against text spans. A Parser is
// stateless apart from its tracer and safe to reuse across spans.
type Parser struct {
	tracer Tracer
}

// Option configures a Parser.
type Option func(*Parser)

// WithTracer installs a Tracer capturing the reasoning trail.
func WithTracer(t Tracer) Option {
	return func(p *Parser) { p.tracer = t }
}

// NewParser returns a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{tracer: Nop}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// rule is one attempt in an extractor cascade. extract returns the
// empty string when the rule does not apply.
type rule struct {
	name    string
	extract func(text string) string
}

// firstMatch evaluates rules in order and returns the first non-empty
// extraction, tracing which rule fired.
func (p *Parser) firstMatch(field, text string, rules []rule) string {
	for _, r := range rules {
		if v := r.extract(text); v != "" {
			p.tracer.Tracef("%s: rule %s matched %q", field, r.name, v)
			return v
		}
	}
	p.tracer.Tracef("%s: no rule matched", field)
	return ""
}

// ParseOne extracts a single record from raw text, best effort. It
// never fails: fields that cannot be extracted stay empty (or at
// their documented defaults).
func (p *Parser) ParseOne(text string) types.ParsedRecord {
	return p.parseSpan(sanitize.Clean(text))
}

// parseSpan runs every field extractor over one cleaned record span
// and assembles the result.
func (p *Parser) parseSpan(clean string) types.ParsedRecord {
	name, referrer := p.extractNameReferrer(clean)

	rec := types.ParsedRecord{
		Name:       name,
		Referrer:   referrer,
		BloodGroup: p.extractBloodGroup(clean),
		Phone:      p.extractPhone(clean),
		Date:       p.extractDate(clean),
		Hospital:   p.extractHospital(clean),
		HallName:   p.extractHall(clean),
	}
	rec.Batch = p.extractBatch(clean)

	if rec.Referrer == "" {
		rec.Referrer = p.extractManagedBy(clean)
	}
	if rec.Referrer != "" {
		rec.Referrer = normalize.ReferrerName(rec.Referrer)
	}

	if rec.Batch == "" {
		rec.Batch = types.DefaultUnknown
	}
	if rec.Hospital == "" {
		rec.Hospital = types.DefaultUnknown
	}
	return rec
}

// Confidence scores a record as achieved weight over possible weight.
// Name, blood group, phone, and date weigh 1.0 each; batch and
// hospital weigh 0.5 and only count when resolved past their
// defaults. Hall and referrer are informational and unweighted.
func Confidence(rec types.ParsedRecord) float64 {
	const possible = 5.0
	var got float64
	if rec.Name != "" {
		got += 1.0
	}
	if rec.BloodGroup != "" {
		got += 1.0
	}
	if rec.Phone != "" {
		got += 1.0
	}
	if rec.Date != "" {
		got += 1.0
	}
	if rec.Batch != "" && rec.Batch != types.DefaultUnknown {
		got += 0.5
	}
	if rec.Hospital != "" && rec.Hospital != types.DefaultUnknown {
		got += 0.5
	}
	return got / possible
}

// Segments splits a cleaned multi-record paste into per-record spans
// on blank lines. A paste with no blank lines is one span: the data
// model is one fact per line, so a single record never contains one.
func Segments(clean string) []string {
	parts := strings.Split(clean, "\n\n")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			segments = append(segments, strings.TrimSpace(part))
		}
	}
	if len(segments) == 0 {
		return nil
	}
	return segments
}

// ParseMany segments raw text on blank lines and parses each span
// independently. Spans yielding neither a name nor a blood group are
// dropped (traced, not raised); an empty result means nothing was
// extractable, not an error.
func (p *Parser) ParseMany(text string) []types.ParsedRecord {
	clean := sanitize.Clean(text)

	var records []types.ParsedRecord
	for i, span := range Segments(clean) {
		rec := p.parseSpan(span)
		if !rec.Usable() {
			p.tracer.Tracef("segment %d: dropped, no name or blood group", i+1)
			continue
		}
		records = append(records, rec)
	}
	return records
}
