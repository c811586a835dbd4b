// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "strings"

// Phone reduces a Bangladeshi mobile number to canonical local form:
// strip everything but digits and a leading plus, then rewrite the
// +880/880 country prefix to a single leading zero.
func Phone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	s := b.String()

	switch {
	case strings.HasPrefix(s, "+880"):
		s = "0" + s[4:]
	case strings.HasPrefix(s, "880"):
		s = "0" + s[3:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	return s
}

// ValidPhone reports whether s is a canonical local number: exactly
// 11 digits beginning 01.
func ValidPhone(s string) bool {
	if len(s) != 11 || !strings.HasPrefix(s, "01") {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
