// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// venue.go extracts batch, hospital, and hall. Hospital and hall are
// gazetteer lookups; batch is the fragile one, since a bare "24-25"
// token looks exactly like the middle of a phone number or date, so
// phone and date spans are masked out before the batch scan.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bloodlink/donor-engine/internal/gazetteer"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var (
	batchLabelRe = regexp.MustCompile(`(?im)^(?:batch|session)\s*[:\-]\s*(.+)$`)

	// yearRangeRe finds candidate two-digit session ranges ("24-25").
	yearRangeRe = regexp.MustCompile(`(\d{2})\s*-\s*(\d{2})`)

	// genericHallRe catches halls missing from the gazetteer: a short
	// run of capitalized words ending in "hall".
	genericHallRe = regexp.MustCompile(`\b((?:\p{Lu}[\p{L}.]*\s+){1,3}[Hh]all)\b`)

	hallLabelRe     = regexp.MustCompile(`(?im)^hall\s*[:\-]\s*(.+)$`)
	hospitalLabelRe = regexp.MustCompile(`(?im)^(?:hospital|location|address)\s*[:\-]\s*(.+)$`)
)

// deptRangeRe matches a department keyword from the gazetteer followed
// by a session range, parenthesized or bare: "Chemistry 23-24",
// "PHR(24-25)".
var deptRangeRe = func() *regexp.Regexp {
	depts := gazetteer.Departments()
	quoted := make([]string, len(depts))
	for i, d := range depts {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\s*\(?\s*(\d{2})\s*[-/]\s*(\d{2})\s*\)?`)
}()

// deptCanonical maps lowercased department keywords to their
// gazetteer casing.
var deptCanonical = func() map[string]string {
	m := make(map[string]string)
	for _, d := range gazetteer.Departments() {
		m[strings.ToLower(d)] = d
	}
	return m
}()

// maskPhonesAndDates overwrites phone and date spans with placeholder
// characters of equal length, so positions of everything else are
// unchanged for downstream index math.
func maskPhonesAndDates(text string) string {
	masked := []byte(text)
	for _, re := range []*regexp.Regexp{phoneIntlRe, phoneLocalRe, dateTokenRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			for i := loc[0]; i < loc[1]; i++ {
				masked[i] = '#'
			}
		}
	}
	return string(masked)
}

// extractBatch prefers an explicit label, then a department keyword
// with a session range, then a bare year range with guards against
// phone and date remnants.
func (p *Parser) extractBatch(clean string) string {
	masked := maskPhonesAndDates(clean)
	return p.firstMatch(types.FieldBatch, masked, []rule{
		{name: "labeled", extract: func(text string) string {
			if m := batchLabelRe.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(m[1])
			}
			return ""
		}},
		{name: "dept_range", extract: func(text string) string {
			m := deptRangeRe.FindStringSubmatch(text)
			if m == nil {
				return ""
			}
			dept := deptCanonical[strings.ToLower(m[1])]
			return fmt.Sprintf("%s %s-%s", dept, m[2], m[3])
		}},
		{name: "bare_range", extract: bareYearRange},
	})
}

// bareYearRange accepts a two-digit range only when both numbers sit
// in 20-99, the second exceeds the first by at most 5, and the token
// is not embedded in a longer digit run (a phone or date remnant).
func bareYearRange(text string) string {
	for _, loc := range yearRangeRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}
		first := atoi2(text[loc[2]:loc[3]])
		second := atoi2(text[loc[4]:loc[5]])
		if first < 20 || first > 99 || second < 20 || second > 99 {
			continue
		}
		if second <= first || second-first > 5 {
			continue
		}
		return fmt.Sprintf("%02d-%02d", first, second)
	}
	return ""
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func atoi2(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// extractHospital is a gazetteer lookup: first hit wins, returning
// the canonical institution name. An explicit label line is the
// fallback for unknown venues.
func (p *Parser) extractHospital(clean string) string {
	return p.firstMatch(types.FieldHospital, clean, []rule{
		{name: "gazetteer", extract: gazetteerLookup(gazetteer.Hospitals())},
		{name: "labeled", extract: func(text string) string {
			if m := hospitalLabelRe.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(m[1])
			}
			return ""
		}},
	})
}

// extractHall is a gazetteer lookup with a generic "<words> hall"
// fallback for halls not in the gazetteer.
func (p *Parser) extractHall(clean string) string {
	return p.firstMatch(types.FieldHallName, clean, []rule{
		{name: "gazetteer", extract: gazetteerLookup(gazetteer.Halls())},
		{name: "labeled", extract: func(text string) string {
			if m := hallLabelRe.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(m[1])
			}
			return ""
		}},
		{name: "generic", extract: func(text string) string {
			if m := genericHallRe.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(m[1])
			}
			return ""
		}},
	})
}

// gazetteerLookup returns a rule matching any alias of the known
// institutions, case-insensitively, yielding the canonical name.
func gazetteerLookup(institutions []gazetteer.Institution) func(string) string {
	return func(text string) string {
		lower := strings.ToLower(text)
		for _, inst := range institutions {
			for _, alias := range append([]string{inst.Name}, inst.Aliases...) {
				if strings.Contains(lower, strings.ToLower(alias)) {
					return inst.Name
				}
			}
		}
		return ""
	}
}
