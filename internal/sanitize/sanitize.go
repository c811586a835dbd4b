// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize strips chat-application noise from pasted donor
// submissions while preserving line structure. Every downstream
// extractor assumes one logical datum per line, so the cleaner never
// joins or reorders lines; it only removes noise within them.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// chatHeaderRe matches exported chat headers like
	// "[12/01/2026, 10:30 PM] Rahim:" at the start of a line.
	chatHeaderRe = regexp.MustCompile(`(?m)^\[\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}(?::\d{2})?\s*(?:[AaPp][Mm])?\]\s*(?:[^:\n]{0,40}:)?\s*`)

	// editMarkerRe matches edit annotations appended by chat apps.
	editMarkerRe = regexp.MustCompile(`(?i)<?this message was edited>?|\(edited\)`)

	// artifactLineRe matches whole lines that are chat artifacts
	// rather than submission content. The trailing newline is consumed
	// so removal does not leave a blank line inside a record span.
	artifactLineRe = regexp.MustCompile(`(?im)^[ \t]*(?:this message was deleted\.?|you deleted this message\.?|replied to [^\n]*|forwarded)[ \t]*\n?`)

	// timeOnlyRe matches stray clock tokens like "10:32 pm".
	timeOnlyRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:[AaPp][\.]?[Mm][\.]?)\b`)

	// bulletRe matches leading bullet or separator glyphs on a line.
	bulletRe = regexp.MustCompile(`(?m)^[\s]*[-*•▪●>~✓☑️]+\s*`)

	// separatorLineRe matches lines made only of separator glyphs.
	separatorLineRe = regexp.MustCompile(`(?m)^[\s]*[-=_*•.~]{3,}[\s]*$`)

	// hspaceRe collapses runs of horizontal whitespace.
	hspaceRe = regexp.MustCompile(`[ \t\x{00a0}]+`)

	// blankRunRe collapses runs of blank lines to one blank line,
	// which the segmenter later uses as the record separator.
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Clean removes chat noise from raw text and normalizes whitespace.
// Newlines are preserved; runs of 2+ blank lines collapse to exactly
// one blank line. Always returns a string, possibly empty.
func Clean(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")

	s = chatHeaderRe.ReplaceAllString(s, "")
	s = editMarkerRe.ReplaceAllString(s, "")
	s = artifactLineRe.ReplaceAllString(s, "")
	s = timeOnlyRe.ReplaceAllString(s, "")
	s = separatorLineRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")

	s = hspaceRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
