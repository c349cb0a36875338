// Package extract pulls structured fields out of free-form job description
// text and HTML. Every function is pure and total: bad input degrades to an
// empty result, never an error.
package extract

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFieldLen is the hard cap on any extracted value. It matches the
	// width of the nullable text columns in the store.
	MaxFieldLen = 5000

	// minFieldLen is the noise floor: anything shorter is treated as an
	// artifact, not a real value.
	minFieldLen = 3
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	inlineSpaceRegex = regexp.MustCompile(`[ \t\r]+`)
	controlRegex     = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
)

// Clean normalizes a raw extracted value: decodes HTML entities, strips
// control characters, collapses all whitespace runs (newlines and tabs
// included) to a single space, trims, and caps the result at MaxFieldLen.
// Returns "" for input that normalizes to fewer than three characters.
//
// Clean is idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	s = controlRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	s = truncate(strings.TrimSpace(s), MaxFieldLen)
	if len(s) < minFieldLen {
		return ""
	}
	return s
}

// truncate caps s at n bytes, backing up to a rune boundary so a multi-byte
// character is never split into invalid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n])
}

// collapseSpace flattens whitespace runs to single spaces without the
// MaxFieldLen cap. Heading pre-checks scan a whole document's text, which
// routinely runs past the field cap.
func collapseSpace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// cleanMultiline is Clean minus the whitespace collapse across lines:
// each line is collapsed and trimmed individually, blank lines are dropped,
// and the newline structure survives. Used where line boundaries carry
// meaning (bullet lists).
func cleanMultiline(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	s = controlRegex.ReplaceAllString(s, "")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(inlineSpaceRegex.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	out := truncate(strings.Join(lines, "\n"), MaxFieldLen)
	if len(out) < minFieldLen {
		return ""
	}
	return out
}

// StripTags converts an HTML or HTML-encoded string to plain text: entities
// are decoded first (handles double-encoded payloads; no-op on real HTML),
// tags removed, whitespace collapsed.
func StripTags(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, " ")
	return strings.Join(strings.Fields(plain), " ")
}
