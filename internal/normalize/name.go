// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bloodlink/donor-engine/internal/gazetteer"
)

var titleCaser = cases.Title(language.Und)

// ReferrerName canonicalizes a referrer name for aggregation: common
// honorific prefixes are stripped, remaining words are title-cased
// except informal kinship suffixes (which stay lowercase), internal
// whitespace is collapsed, and trailing periods are removed. With this
// "md rowshon", "Rowshon" and "Md. Rowshon" all reduce to "Rowshon".
func ReferrerName(raw string) string {
	words := strings.Fields(strings.TrimSpace(raw))

	for len(words) > 1 && gazetteer.IsHonorific(words[0]) {
		words = words[1:]
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSuffix(w, ".")
		if w == "" {
			continue
		}
		if gazetteer.IsKinship(w) {
			out = append(out, strings.ToLower(w))
			continue
		}
		out = append(out, titleCaser.String(strings.ToLower(w)))
	}
	return strings.Join(out, " ")
}
