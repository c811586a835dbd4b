// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// fields.go holds the blood-group, phone, and date cascades. Every
// rule extracts a raw candidate and defers to the normalizers; a
// candidate that does not normalize to canonical form is treated as
// no match so the cascade can keep looking.
package extract

import (
	"regexp"
	"strings"

	"github.com/bloodlink/donor-engine/internal/gazetteer"
	"github.com/bloodlink/donor-engine/internal/normalize"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var (
	// bareBloodLineRe matches a line that is nothing but a blood-group
	// token: "B+", "(O-)", "AB (+ve)", "b positive".
	bareBloodLineRe = regexp.MustCompile(`(?i)^\(?(?:AB|A|B|O)\s*\(?\s*(?:[+-]\s*(?:ve)?|positive|negative|ve)\s*\)?\)?\.?$`)

	// Whole-text blood-group shapes, in descending reliability.
	bgParenSignRe  = regexp.MustCompile(`(?i)[(\[]\s*((?:AB|A|B|O)\s*[+-]\s*(?:ve)?)\s*[)\]]`)
	bgStandaloneRe = regexp.MustCompile(`\b(AB|A|B|O)([+-])`)
	bgSpaceSignRe  = regexp.MustCompile(`(?i)\b(AB|A|B|O) ([+-])`)
	bgParenWordRe  = regexp.MustCompile(`(?i)\b(AB|A|B|O)\s*\(\s*(\+\s*ve|-\s*ve|positive|negative)\s*\)`)
	bgTrailingVeRe = regexp.MustCompile(`(?i)\b(AB|A|B|O)\s*([+-]?)\s*ve\b`)

	// platelet is a noise token that otherwise abuts a blood group in
	// requests like "B+ platelet needed".
	plateletRe = regexp.MustCompile(`(?i)platelet`)

	// Phone shapes: international (+880/880) and local (01) forms
	// with optional internal space or dash separators.
	phoneIntlRe  = regexp.MustCompile(`\+?880[\s-]?1\d(?:[\s-]?\d){8}`)
	phoneLocalRe = regexp.MustCompile(`\b01\d(?:[\s-]?\d){8}\b`)

	// dateTokenRe finds candidate day/month/year tokens; the
	// normalizer decides whether one is actually a date.
	dateTokenRe = regexp.MustCompile(`\b\d{1,2}[-./]\d{1,2}[-./]\d{2,4}\b`)
)

// extractBloodGroup scans line-by-line first (one fact per line is
// the most reliable signal), then falls back to whole-text shapes in
// descending priority, with the platelet noise token stripped.
func (p *Parser) extractBloodGroup(clean string) string {
	return p.firstMatch(types.FieldBloodGroup, clean, []rule{
		{name: "standalone_line", extract: func(text string) string {
			for _, line := range splitLines(text) {
				if !bareBloodLineRe.MatchString(line) {
					continue
				}
				if g := normalize.BloodGroup(line); gazetteer.IsBloodGroup(g) {
					return g
				}
			}
			return ""
		}},
		{name: "labeled_line", extract: func(text string) string {
			for _, line := range splitLines(text) {
				m := bloodLabelRe.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				if g := normalize.BloodGroup(m[1]); gazetteer.IsBloodGroup(g) {
					return g
				}
			}
			return ""
		}},
		{name: "paren_sign", extract: bgShape(bgParenSignRe)},
		{name: "standalone_sign", extract: bgShape(bgStandaloneRe)},
		{name: "space_sign", extract: bgShape(bgSpaceSignRe)},
		{name: "paren_word", extract: bgShape(bgParenWordRe)},
		{name: "trailing_ve", extract: bgShape(bgTrailingVeRe)},
	})
}

// bloodLabelRe matches an explicit blood-group label on a line.
var bloodLabelRe = regexp.MustCompile(`(?i)^(?:blood\s*group|blood|group)\s*[:\-]\s*(.+)$`)

// bgShape adapts a whole-text shape regex into a cascade rule: join
// the capture groups, strip platelet noise first, and accept only
// candidates that normalize to a canonical code.
func bgShape(re *regexp.Regexp) func(string) string {
	return func(text string) string {
		text = plateletRe.ReplaceAllString(text, "")
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := strings.Join(m[1:], "")
			if g := normalize.BloodGroup(candidate); gazetteer.IsBloodGroup(g) {
				return g
			}
		}
		return ""
	}
}

// extractPhone tries international forms before local ones; the first
// candidate that normalizes to exactly 11 digits starting 01 wins.
func (p *Parser) extractPhone(clean string) string {
	return p.firstMatch(types.FieldPhone, clean, []rule{
		{name: "intl", extract: phoneShape(phoneIntlRe)},
		{name: "local", extract: phoneShape(phoneLocalRe)},
	})
}

func phoneShape(re *regexp.Regexp) func(string) string {
	return func(text string) string {
		for _, m := range re.FindAllString(text, -1) {
			if p := normalize.Phone(m); normalize.ValidPhone(p) {
				return p
			}
		}
		return ""
	}
}

// extractDate returns the first candidate token that normalizes to
// canonical DD-MM-YYYY.
func (p *Parser) extractDate(clean string) string {
	return p.firstMatch(types.FieldDate, clean, []rule{
		{name: "day_month_year", extract: func(text string) string {
			for _, m := range dateTokenRe.FindAllString(text, -1) {
				if d := normalize.Date(m); normalize.ValidDate(d) {
					return d
				}
			}
			return ""
		}},
	})
}
