// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts accepted surface forms of donor fields
// into their canonical representations. Normalizers never fail: input
// that cannot be confidently transformed is returned unchanged.
package normalize

import (
	"regexp"
	"strings"

	"github.com/bloodlink/donor-engine/internal/gazetteer"
)

var (
	wsRe      = regexp.MustCompile(`\s+`)
	baseRe    = regexp.MustCompile(`^[(\[]?(AB|A|B|O)`)
	negWordRe = regexp.MustCompile(`NEGATIVE|NEG|MINUS`)
)

// BloodGroup maps a blood-group surface form ("b +ve", "AB(positive)",
// "o-") to one of the eight canonical codes. If the base letters are
// missing the input is returned unchanged.
func BloodGroup(raw string) string {
	s := strings.ToUpper(wsRe.ReplaceAllString(raw, ""))

	m := baseRe.FindStringSubmatch(s)
	if m == nil {
		return raw
	}
	base := m[1]
	rest := s[len(m[0]):]

	pos := strings.Contains(rest, "+") || strings.Contains(rest, "POSITIVE")
	neg := strings.Contains(rest, "-") || negWordRe.MatchString(rest)
	if !pos && !neg && strings.Contains(rest, "VE") {
		// A bare "ve" qualifier carries an implicit plus: "Bve", "B(ve)".
		pos = true
	}

	var sign string
	switch {
	case pos && !neg:
		sign = "+"
	case neg && !pos:
		sign = "-"
	case strings.HasSuffix(s, "+"):
		sign = "+"
	case strings.HasSuffix(s, "-"):
		sign = "-"
	default:
		sign = "+"
	}

	code := base + sign
	if !gazetteer.IsBloodGroup(code) {
		return raw
	}
	return code
}
