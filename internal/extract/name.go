// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// name.go infers the donor name and referrer from line position and
// shape. Pasted fragments often list a referrer before the donor's
// own name with no label at all, so the extractor leans on the
// two-name rule: when the first two lines both look like names, the
// first is the referrer and the second is the donor.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bloodlink/donor-engine/internal/gazetteer"
	"github.com/bloodlink/donor-engine/internal/normalize"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var (
	// nameCharsRe accepts lines of letters, spaces, and periods only.
	// Unicode letters included: submissions mix scripts freely.
	nameCharsRe = regexp.MustCompile(`^[\p{L} .]+$`)

	// labeledNameRe matches an explicit name label anywhere in a span.
	labeledNameRe = regexp.MustCompile(`(?im)^(?:name|donor)\s*[:\-]\s*(.+)$`)

	// managedByRe matches the "managed by" referrer label.
	managedByRe = regexp.MustCompile(`(?im)^managed\s*by\s*[:\-]?\s*(.+)$`)

	// refLabelRe matches explicit reference labels.
	refLabelRe = regexp.MustCompile(`(?im)^(?:reference|ref)\s*[:\-]\s*(.+)$`)

	// trailingParenRe strips a trailing parenthesized annotation, e.g.
	// a batch note after a referrer name.
	trailingParenRe = regexp.MustCompile(`\s*\([^)]*\)\.?\s*$`)

	// nameBGParenRe captures "Riaz(A+)" style lines: a name followed
	// by a parenthesized blood group.
	nameBGParenRe = regexp.MustCompile(`^([\p{L}][\p{L} .]*?)\s*[(\[]([^)\]]{1,12})[)\]]\.?$`)

	// nameBGTrailRe captures "Abdur Rahman B+" style lines: a name
	// followed by a bare blood group token.
	nameBGTrailRe = regexp.MustCompile(`(?i)^([\p{L}][\p{L} .]*?)[\s,]+((?:AB|A|B|O)\s*(?:[+-]\s*(?:ve)?|\(\s*(?:\+\s*ve|-\s*ve|positive|negative)\s*\)|ve))\.?$`)
)

// fieldLabelRe is built from the gazetteer: a line starting with a
// recognized field keyword followed by a colon or dash is a labeled
// field, not a name.
var fieldLabelRe = func() *regexp.Regexp {
	labels := gazetteer.FieldLabels()
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(quoted, "|") + `)\s*[:\-]`)
}()

// splitLines returns the non-empty trimmed lines of a span.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// isNameLike reports whether a line plausibly is a bare person name:
// not a phone, date, or blood-group token, not a labeled field, only
// letters/spaces/periods, and 2-50 runes long.
func isNameLike(line string) bool {
	if fieldLabelRe.MatchString(line) || managedByRe.MatchString(line) {
		return false
	}
	if phoneLocalRe.MatchString(line) || phoneIntlRe.MatchString(line) {
		return false
	}
	if dateTokenRe.MatchString(line) {
		return false
	}
	if bareBloodLineRe.MatchString(line) {
		return false
	}
	if !nameCharsRe.MatchString(line) {
		return false
	}
	n := utf8.RuneCountInString(line)
	return n >= 2 && n <= 50
}

// nameWithBloodGroup extracts the name prefix from a line carrying a
// trailing blood group, either parenthesized ("Riaz(A+)") or bare
// ("Abdur Rahman B+"). The blood-group suffix is discarded here; the
// blood-group extractor finds it independently.
func nameWithBloodGroup(line string) (string, bool) {
	for _, re := range []*regexp.Regexp{nameBGParenRe, nameBGTrailRe} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if !gazetteer.IsBloodGroup(normalize.BloodGroup(m[2])) {
			continue
		}
		if !nameCharsRe.MatchString(name) {
			continue
		}
		if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
			continue
		}
		return name, true
	}
	return "", false
}

// donorNameFrom extracts a donor name from a single line: the line
// itself when it is name-like, or its prefix when it carries a
// trailing blood group.
func donorNameFrom(line string) string {
	if name, ok := nameWithBloodGroup(line); ok {
		return name
	}
	if isNameLike(line) {
		return line
	}
	return ""
}

// TwoNameSplit applies the two-name rule to a cleaned span: if the
// first line is name-like and a donor name can be positively
// extracted from the second, the first line is the referrer and the
// second names the donor. ok is false when the rule does not apply;
// the rule never swallows a referrer without a donor name to show
// for it.
func TwoNameSplit(clean string) (referrer, name string, ok bool) {
	lines := splitLines(clean)
	if len(lines) < 2 {
		return "", "", false
	}
	if !isNameLike(lines[0]) {
		return "", "", false
	}
	donor := donorNameFrom(lines[1])
	if donor == "" {
		return "", "", false
	}
	return lines[0], donor, true
}

// extractNameReferrer resolves the donor name and, when the two-name
// rule applies, the referrer. Cascade: explicit name label, two-name
// rule, then the first line on its own.
func (p *Parser) extractNameReferrer(clean string) (string, string) {
	if m := labeledNameRe.FindStringSubmatch(clean); m != nil {
		line := strings.TrimSpace(m[1])
		if name := donorNameFrom(line); name != "" {
			p.tracer.Tracef("name: rule labeled_name matched %q", name)
			return name, ""
		}
	}

	if referrer, name, ok := TwoNameSplit(clean); ok {
		p.tracer.Tracef("name: rule two_name matched donor %q, referrer %q", name, referrer)
		return name, referrer
	}

	lines := splitLines(clean)
	if len(lines) > 0 {
		if name := donorNameFrom(lines[0]); name != "" {
			p.tracer.Tracef("name: rule first_line matched %q", name)
			return name, ""
		}
	}

	p.tracer.Tracef("name: no rule matched")
	return "", ""
}

// extractManagedBy is the secondary referrer path, used when the
// two-name rule left the referrer empty: an explicit "managed by" or
// reference label, with any trailing batch annotation stripped.
func (p *Parser) extractManagedBy(clean string) string {
	return p.firstMatch(types.FieldReferrer, clean, []rule{
		{name: "managed_by", extract: func(text string) string {
			if m := managedByRe.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(trailingParenRe.ReplaceAllString(m[1], ""))
			}
			return ""
		}},
		{name: "reference_label", extract: func(text string) string {
			if m := refLabelRe.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(trailingParenRe.ReplaceAllString(m[1], ""))
			}
			return ""
		}},
	})
}
