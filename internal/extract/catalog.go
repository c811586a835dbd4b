// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// catalog.go exposes the extractor's rule surface to the pattern
// miner: the regex shapes per field, the literal field-label
// keywords, and the positional heuristic identifier. The miner scores
// these against the verified corpus; it does not change the cascades.
package extract

import (
	"regexp"
	"strings"

	"github.com/bloodlink/donor-engine/pkg/types"
)

// CatalogRule is one candidate extraction pattern for mining.
type CatalogRule struct {
	// Field is the record field the rule targets.
	Field string

	// Source is the rule body as stored with a LearnedPattern: regex
	// source for the regex family, lowercased literal for keywords.
	Source string

	re *regexp.Regexp
}

// Matches reports whether the rule's surface pattern fires anywhere
// in text. Keyword rules use case-insensitive containment.
func (c CatalogRule) Matches(text string) bool {
	if c.re != nil {
		return c.re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), c.Source)
}

func regexRule(field string, re *regexp.Regexp) CatalogRule {
	return CatalogRule{Field: field, Source: re.String(), re: re}
}

// RegexCatalog lists the fixed candidate regex shapes per field, in
// cascade order.
func RegexCatalog() []CatalogRule {
	return []CatalogRule{
		regexRule(types.FieldBloodGroup, bgParenSignRe),
		regexRule(types.FieldBloodGroup, bgStandaloneRe),
		regexRule(types.FieldBloodGroup, bgSpaceSignRe),
		regexRule(types.FieldBloodGroup, bgParenWordRe),
		regexRule(types.FieldBloodGroup, bgTrailingVeRe),
		regexRule(types.FieldPhone, phoneIntlRe),
		regexRule(types.FieldPhone, phoneLocalRe),
		regexRule(types.FieldDate, dateTokenRe),
		regexRule(types.FieldBatch, deptRangeRe),
		regexRule(types.FieldBatch, yearRangeRe),
		regexRule(types.FieldHallName, genericHallRe),
		regexRule(types.FieldReferrer, managedByRe),
	}
}

// KeywordCatalog lists the fixed literal field-label keywords checked
// for containment.
func KeywordCatalog() []CatalogRule {
	return []CatalogRule{
		{Field: types.FieldName, Source: "name:"},
		{Field: types.FieldBloodGroup, Source: "blood group:"},
		{Field: types.FieldBloodGroup, Source: "blood:"},
		{Field: types.FieldPhone, Source: "mobile:"},
		{Field: types.FieldPhone, Source: "phone:"},
		{Field: types.FieldPhone, Source: "contact:"},
		{Field: types.FieldDate, Source: "date:"},
		{Field: types.FieldBatch, Source: "batch:"},
		{Field: types.FieldHallName, Source: "hall:"},
		{Field: types.FieldHospital, Source: "hospital:"},
		{Field: types.FieldReferrer, Source: "managed by"},
	}
}

// PositionalRuleID names the two-name heuristic in the positional
// mining family.
const PositionalRuleID = "two_name_leading_lines"
