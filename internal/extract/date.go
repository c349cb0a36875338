package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Absolute layouts tried in order. MM/DD/YYYY deliberately precedes
// DD/MM/YYYY: US career sites dominate the input, so an ambiguous value
// like 03/04/2026 reads as March 4th.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"2/1/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var relativeDateRegex = regexp.MustCompile(`(?i)(\d+)?\s*(day|week|month)s?\s+ago`)

// ParseDate parses a heterogeneous posting-date string into a calendar date
// (UTC midnight). Absolute formats are tried first, then relative phrases
// like "Posted 3 days ago". An unparseable non-empty string falls back to
// today's date — best-effort legacy behavior; the ok result is false both
// then and for empty input, so callers can tell a defaulted date from a
// genuinely parsed one.
func ParseDate(s string) (time.Time, bool) {
	return parseDateAt(s, time.Now().UTC())
}

func parseDateAt(s string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Workday's relative vocabulary.
	switch strings.ToLower(s) {
	case "today", "posted today":
		return today, true
	case "yesterday", "posted yesterday":
		return today.AddDate(0, 0, -1), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	if m := relativeDateRegex.FindStringSubmatch(s); m != nil {
		n := 1
		if m[1] != "" {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				n = parsed
			}
		}
		switch strings.ToLower(m[2]) {
		case "day":
			return today.AddDate(0, 0, -n), true
		case "week":
			return today.AddDate(0, 0, -7*n), true
		case "month":
			return today.AddDate(0, -n, 0), true
		}
	}

	// Last resort: assume the posting is current.
	return today, false
}
