// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
)

// dateRe accepts day/month/year with -, . or / separators and a 2- or
// 4-digit year. The separator must repeat between both pairs.
var dateRe = regexp.MustCompile(`^\s*(\d{1,2})([-./])(\d{1,2})([-./])(\d{2,4})\s*$`)

// Date maps a date surface form to canonical DD-MM-YYYY. Dash and dot
// dates are read day-first; slash dates are disambiguated positionally
// (a segment above 12 must be the day) and default to day-first when
// both segments are ambiguous. Two-digit years are promoted to 20xx.
// Input that does not parse, or that names an impossible day or
// month, is returned unchanged.
func Date(raw string) string {
	m := dateRe.FindStringSubmatch(raw)
	if m == nil || m[2] != m[4] {
		return raw
	}

	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[5])

	day, month := first, second
	if m[2] == "/" {
		switch {
		case first > 12:
			day, month = first, second
		case second > 12:
			day, month = second, first
		default:
			day, month = first, second
		}
	}

	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return raw
	}
	return fmt.Sprintf("%02d-%02d-%04d", day, month, year)
}

// canonicalDateRe matches the canonical DD-MM-YYYY form.
var canonicalDateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ValidDate reports whether s is in canonical DD-MM-YYYY form.
func ValidDate(s string) bool {
	return canonicalDateRe.MatchString(s)
}
